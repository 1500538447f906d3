package store

import (
	"context"
	"database/sql"
	"fmt"
)

// FavoriteRepo persists the ordered set of favorite subject ids.
type FavoriteRepo interface {
	// List returns favorite subject ids in insertion order.
	List(ctx context.Context) ([]string, error)

	// Add appends a subject to the favorites. Adding an existing
	// favorite is a no-op.
	Add(ctx context.Context, subjectID string) error

	// Remove deletes a subject from the favorites. Removing a
	// non-favorite is a no-op.
	Remove(ctx context.Context, subjectID string) error

	// Toggle flips favorite status and reports the new state.
	Toggle(ctx context.Context, subjectID string) (bool, error)

	// IsFavorite reports whether the subject is a favorite.
	IsFavorite(ctx context.Context, subjectID string) (bool, error)
}

// favoriteRepo implements FavoriteRepo on raw SQL.
type favoriteRepo struct {
	db *sql.DB
}

func (r *favoriteRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT subject_id FROM favorites ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return ids, nil
}

func (r *favoriteRepo) Add(ctx context.Context, subjectID string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO favorites (subject_id, position)
VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM favorites))
ON CONFLICT (subject_id) DO NOTHING`, subjectID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepo) Remove(ctx context.Context, subjectID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE subject_id = ?`, subjectID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepo) Toggle(ctx context.Context, subjectID string) (bool, error) {
	fav, err := r.IsFavorite(ctx, subjectID)
	if err != nil {
		return false, err
	}
	if fav {
		return false, r.Remove(ctx, subjectID)
	}
	return true, r.Add(ctx, subjectID)
}

func (r *favoriteRepo) IsFavorite(ctx context.Context, subjectID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE subject_id = ?`, subjectID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return n > 0, nil
}
