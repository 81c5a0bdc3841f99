package dto

import (
	"net/url"
	"strconv"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

// Page reads limit with offset, or limit with a 1-based page number.
// Unparseable values fall back to the defaults.
func Page(q url.Values) domain.PageRequest {
	limit := intParam(q, "limit")
	if q.Has("page") {
		return domain.PageFromNumber(intParam(q, "page"), limit)
	}
	return domain.NewPageRequest(limit, intParam(q, "offset"))
}

// Flag reports whether the query parameter is exactly "true".
func Flag(q url.Values, key string) bool {
	return q.Get(key) == "true"
}

func intParam(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return n
}
