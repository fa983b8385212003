package db

import (
	"budget-tracker-server/src/models"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSegmentBudgets(ctx context.Context, pool *pgxpool.Pool, userID, year, month int) ([]models.SegmentBudget, error) {
	query := `
		SELECT sb.id, sb.user_id, sb.segment_id, s.name, sb.year, sb.month, sb.allocated_amount, sb.created_at
		FROM segment_budgets sb
		JOIN segments s ON s.id = sb.segment_id
		WHERE sb.user_id = $1 AND sb.year = $2 AND sb.month = $3
		ORDER BY s.name
	`
	rows, err := pool.Query(ctx, query, userID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []models.SegmentBudget
	for rows.Next() {
		var sb models.SegmentBudget
		err := rows.Scan(&sb.ID, &sb.UserID, &sb.SegmentID, &sb.SegmentName,
			&sb.Year, &sb.Month, &sb.AllocatedAmount, &sb.CreatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, sb)
	}
	return budgets, rows.Err()
}

// UpsertSegmentBudget sets a segment's allocation for a period. The
// insert selects from segments so an id owned by another user matches
// nothing and surfaces as pgx.ErrNoRows.
func UpsertSegmentBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.SegmentBudget) (*models.SegmentBudget, error) {
	query := `
		INSERT INTO segment_budgets (user_id, segment_id, year, month, allocated_amount)
		SELECT $1, s.id, $3, $4, $5
		FROM segments s
		WHERE s.id = $2 AND s.user_id = $1
		ON CONFLICT (user_id, segment_id, year, month)
		DO UPDATE SET allocated_amount = EXCLUDED.allocated_amount
		RETURNING id, user_id, segment_id, year, month, allocated_amount, created_at
	`
	var sb models.SegmentBudget
	err := pool.QueryRow(ctx, query, budget.UserID, budget.SegmentID,
		budget.Year, budget.Month, budget.AllocatedAmount).
		Scan(&sb.ID, &sb.UserID, &sb.SegmentID, &sb.Year, &sb.Month, &sb.AllocatedAmount, &sb.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sb, nil
}

// BulkUpsertSegmentBudgets applies every allocation in one transaction
// so a batch either fully applies or fully fails.
func BulkUpsertSegmentBudgets(ctx context.Context, pool *pgxpool.Pool, userID int, budgets []models.SegmentBudget) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO segment_budgets (user_id, segment_id, year, month, allocated_amount)
		SELECT $1, s.id, $3, $4, $5
		FROM segments s
		WHERE s.id = $2 AND s.user_id = $1
		ON CONFLICT (user_id, segment_id, year, month)
		DO UPDATE SET allocated_amount = EXCLUDED.allocated_amount
		RETURNING id
	`
	for _, b := range budgets {
		var id int
		err := tx.QueryRow(ctx, query, userID, b.SegmentID, b.Year, b.Month, b.AllocatedAmount).Scan(&id)
		if err == pgx.ErrNoRows {
			return pgx.ErrNoRows
		}
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CopyPreviousSegmentBudgets copies the source period's allocations into
// the destination period. Destination rows that already exist are left
// untouched (DO NOTHING); returns the number of rows created.
func CopyPreviousSegmentBudgets(ctx context.Context, pool *pgxpool.Pool, userID, prevYear, prevMonth, year, month int) (int64, error) {
	query := `
		INSERT INTO segment_budgets (user_id, segment_id, year, month, allocated_amount)
		SELECT user_id, segment_id, $4, $5, allocated_amount
		FROM segment_budgets
		WHERE user_id = $1 AND year = $2 AND month = $3
		ON CONFLICT (user_id, segment_id, year, month) DO NOTHING
	`
	cmd, err := pool.Exec(ctx, query, userID, prevYear, prevMonth, year, month)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
