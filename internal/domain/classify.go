package domain

import "github.com/Interreferences/NoWayDpl-back/internal/constants"

// ReleaseTypeTitle maps a release's track count to its release type title.
// A release with no tracks has no type and ok is false.
func ReleaseTypeTitle(trackCount int) (title string, ok bool) {
	switch {
	case trackCount <= 0:
		return "", false
	case trackCount <= constants.SingleMaxTracks:
		return constants.ReleaseTypeSingle, true
	case trackCount <= constants.EPMaxTracks:
		return constants.ReleaseTypeEP, true
	default:
		return constants.ReleaseTypeAlbum, true
	}
}

// UniqueIDs drops duplicates and non-positive ids, keeping first-seen order.
func UniqueIDs(ids []int) []int {
	if ids == nil {
		return nil
	}
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
