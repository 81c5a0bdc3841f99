package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

// where accumulates AND-ed conditions and their arguments.
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// contains adds a case-insensitive substring match on col. Empty s matches everything.
func (w *where) contains(col, s string) {
	if s == "" {
		return
	}
	w.add("unicode_lower("+col+") LIKE ? ESCAPE '\\'", likePattern(s))
}

func (w where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// listPage counts the rows of table matching w and selects one page of them.
func listPage[T any](ctx context.Context, db *DB, table string, w where, order string, page domain.PageRequest) ([]T, int, error) {
	var total int
	countQuery := "SELECT COUNT(*) FROM " + table + w.String()
	if err := db.GetContext(ctx, &total, db.Rebind(countQuery), w.args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	items := []T{}
	if total == 0 {
		return items, 0, nil
	}

	args := append(append([]interface{}{}, w.args...), page.Limit, page.Offset)
	selectQuery := "SELECT * FROM " + table + w.String() + " ORDER BY " + order + " LIMIT ? OFFSET ?"
	if err := db.SelectContext(ctx, &items, db.Rebind(selectQuery), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", table, err)
	}
	return items, total, nil
}

// byIDs loads rows of table keyed by id.
func byIDs[T any](ctx context.Context, db *DB, table string, ids []int, key func(T) int) (map[int]T, error) {
	out := make(map[int]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []T
	if err := db.selectIn(ctx, &rows, "SELECT * FROM "+table+" WHERE id IN (?)", ids); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	for _, r := range rows {
		out[key(r)] = r
	}
	return out, nil
}
