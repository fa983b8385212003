package db

import (
	"budget-tracker-server/src/models"
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Rollup queries aggregate allocations and expenses in separate
// subqueries before joining onto segments. Joining both tables onto
// segments directly would multiply each SUM by the other side's row
// count whenever a segment has several of each in the period.

func scanDashboardSegments(ctx context.Context, pool *pgxpool.Pool, query string, args ...any) ([]models.DashboardSegment, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var segments []models.DashboardSegment
	for rows.Next() {
		var s models.DashboardSegment
		if err := rows.Scan(&s.ID, &s.Name, &s.Budget, &s.Spent); err != nil {
			return nil, err
		}
		s.Remaining = s.Budget - s.Spent
		segments = append(segments, s)
	}
	return segments, rows.Err()
}

// GetMonthlyRollup returns one row per segment the user owns, zero-filled
// when the segment has no allocation or spend in the period.
func GetMonthlyRollup(ctx context.Context, pool *pgxpool.Pool, userID, year, month int) ([]models.DashboardSegment, error) {
	query := `
		SELECT s.id, s.name,
		       COALESCE(b.budget, 0) AS budget,
		       COALESCE(x.spent, 0) AS spent
		FROM segments s
		LEFT JOIN (
			SELECT segment_id, SUM(allocated_amount) AS budget
			FROM segment_budgets
			WHERE user_id = $1 AND year = $2 AND month = $3
			GROUP BY segment_id
		) b ON b.segment_id = s.id
		LEFT JOIN (
			SELECT segment_id, SUM(amount) AS spent
			FROM expenses
			WHERE user_id = $1 AND year = $2 AND month = $3
			GROUP BY segment_id
		) x ON x.segment_id = s.id
		WHERE s.user_id = $1
		ORDER BY s.name
	`
	return scanDashboardSegments(ctx, pool, query, userID, year, month)
}

// GetYearlyRollup sums allocations and spend across all months of the year.
func GetYearlyRollup(ctx context.Context, pool *pgxpool.Pool, userID, year int) ([]models.DashboardSegment, error) {
	query := `
		SELECT s.id, s.name,
		       COALESCE(b.budget, 0) AS budget,
		       COALESCE(x.spent, 0) AS spent
		FROM segments s
		LEFT JOIN (
			SELECT segment_id, SUM(allocated_amount) AS budget
			FROM segment_budgets
			WHERE user_id = $1 AND year = $2
			GROUP BY segment_id
		) b ON b.segment_id = s.id
		LEFT JOIN (
			SELECT segment_id, SUM(amount) AS spent
			FROM expenses
			WHERE user_id = $1 AND year = $2
			GROUP BY segment_id
		) x ON x.segment_id = s.id
		WHERE s.user_id = $1
		ORDER BY s.name
	`
	return scanDashboardSegments(ctx, pool, query, userID, year)
}

// GetYearMonthlyBreakdown reports budget and spend per month, for the
// months of the year that have at least one expense.
func GetYearMonthlyBreakdown(ctx context.Context, pool *pgxpool.Pool, userID, year int) ([]models.MonthBreakdown, error) {
	query := `
		SELECT m.month,
		       COALESCE(b.budget, 0) AS budget,
		       COALESCE(x.spent, 0) AS spent
		FROM (
			SELECT DISTINCT month FROM expenses WHERE user_id = $1 AND year = $2
		) m
		LEFT JOIN (
			SELECT month, SUM(allocated_amount) AS budget
			FROM segment_budgets
			WHERE user_id = $1 AND year = $2
			GROUP BY month
		) b ON b.month = m.month
		LEFT JOIN (
			SELECT month, SUM(amount) AS spent
			FROM expenses
			WHERE user_id = $1 AND year = $2
			GROUP BY month
		) x ON x.month = m.month
		ORDER BY m.month
	`
	rows, err := pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdown []models.MonthBreakdown
	for rows.Next() {
		var m models.MonthBreakdown
		if err := rows.Scan(&m.Month, &m.Budget, &m.Spent); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, m)
	}
	return breakdown, rows.Err()
}
