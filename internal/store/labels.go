package store

import (
	"context"
	"fmt"

	"github.com/Interreferences/NoWayDpl-back/internal/domain"
)

func (db *DB) CreateLabel(ctx context.Context, l *domain.Label) error {
	id, err := db.insertID(ctx, `INSERT INTO labels (name) VALUES (?) RETURNING id`, l.Name)
	if err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}
	l.ID = id
	return nil
}

func (db *DB) GetLabel(ctx context.Context, id int) (*domain.Label, error) {
	var l domain.Label
	ok, err := db.getOne(ctx, &l, `SELECT * FROM labels WHERE id = ?`, id)
	if err != nil || !ok {
		return nil, err
	}
	return &l, nil
}

func (db *DB) UpdateLabel(ctx context.Context, l *domain.Label) (bool, error) {
	n, err := db.exec(ctx, `UPDATE labels SET name = ? WHERE id = ?`, l.Name, l.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update label: %w", err)
	}
	return n > 0, nil
}

// DeleteLabel removes the label's release links and the row.
func (db *DB) DeleteLabel(ctx context.Context, id int) error {
	if _, err := db.exec(ctx, `DELETE FROM release_labels WHERE label_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete label releases: %w", err)
	}
	if _, err := db.exec(ctx, `DELETE FROM labels WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	return nil
}

func (db *DB) ListLabels(ctx context.Context, name string, page domain.PageRequest) ([]domain.Label, int, error) {
	var w where
	w.contains("name", name)
	return listPage[domain.Label](ctx, db, "labels", w, "id", page)
}

type releaseLabelRow struct {
	domain.Label
	ReleaseID int `db:"release_id"`
}

// LabelsByRelease groups labels by release id.
func (db *DB) LabelsByRelease(ctx context.Context, releaseIDs []int) (map[int][]domain.Label, error) {
	out := make(map[int][]domain.Label)
	if len(releaseIDs) == 0 {
		return out, nil
	}
	var rows []releaseLabelRow
	err := db.selectIn(ctx, &rows, `SELECT l.*, rl.release_id FROM labels l
		JOIN release_labels rl ON rl.label_id = l.id
		WHERE rl.release_id IN (?) ORDER BY l.id`, releaseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load release labels: %w", err)
	}
	for _, r := range rows {
		out[r.ReleaseID] = append(out[r.ReleaseID], r.Label)
	}
	return out, nil
}

// SetReleaseLabels replaces every label link of a release.
func (db *DB) SetReleaseLabels(ctx context.Context, releaseID int, labelIDs []int) error {
	if _, err := db.exec(ctx, `DELETE FROM release_labels WHERE release_id = ?`, releaseID); err != nil {
		return fmt.Errorf("failed to clear release labels: %w", err)
	}
	for _, labelID := range labelIDs {
		if _, err := db.exec(ctx, `INSERT INTO release_labels (release_id, label_id) VALUES (?, ?)`, releaseID, labelID); err != nil {
			return fmt.Errorf("failed to link label %d: %w", labelID, err)
		}
	}
	return nil
}
