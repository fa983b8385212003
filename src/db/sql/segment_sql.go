package db

import (
	"budget-tracker-server/src/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSegmentsForUser(ctx context.Context, pool *pgxpool.Pool, userID int) ([]models.Segment, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM segments WHERE user_id = $1
		ORDER BY name
	`
	rows, err := pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []models.Segment
	for rows.Next() {
		var s models.Segment
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

func CreateSegment(ctx context.Context, pool *pgxpool.Pool, userID int, name string) (*models.Segment, error) {
	query := `
		INSERT INTO segments (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`
	var s models.Segment
	err := pool.QueryRow(ctx, query, userID, name).
		Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RenameSegment returns the number of rows changed; renaming a segment
// that does not exist or belongs to another user is zero, not an error.
func RenameSegment(ctx context.Context, pool *pgxpool.Pool, userID, segmentID int, name string) (int64, error) {
	query := `UPDATE segments SET name = $1 WHERE id = $2 AND user_id = $3`
	cmd, err := pool.Exec(ctx, query, name, segmentID, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// DeleteSegment cascades to the segment's budgets and expenses through
// the foreign keys.
func DeleteSegment(ctx context.Context, pool *pgxpool.Pool, userID, segmentID int) (int64, error) {
	query := `DELETE FROM segments WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, segmentID, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
