package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ExportRow is one line of a CSV report. Pointer fields come from outer
// joins and are nil when a segment has no expenses in the period.
type ExportRow struct {
	Segment     string
	Month       *int
	Budget      float64
	Amount      *float64
	Description *string
	ExpenseDate *time.Time
}

// GetMonthlyExportRows lists every expense of the period joined to its
// segment and allocation; segments without expenses still produce a row
// with empty expense fields.
func GetMonthlyExportRows(ctx context.Context, pool *pgxpool.Pool, userID, year, month int) ([]ExportRow, error) {
	query := `
		SELECT s.name, COALESCE(sb.allocated_amount, 0), e.amount, e.description, e.expense_date
		FROM segments s
		LEFT JOIN segment_budgets sb
			ON sb.segment_id = s.id AND sb.user_id = $1 AND sb.year = $2 AND sb.month = $3
		LEFT JOIN expenses e
			ON e.segment_id = s.id AND e.user_id = $1 AND e.year = $2 AND e.month = $3
		WHERE s.user_id = $1
		ORDER BY s.name, e.expense_date
	`
	rows, err := pool.Query(ctx, query, userID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ExportRow
	for rows.Next() {
		var r ExportRow
		if err := rows.Scan(&r.Segment, &r.Budget, &r.Amount, &r.Description, &r.ExpenseDate); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetYearlyExportRows lists the year's expenses with their month and the
// allocation in force for each expense's period.
func GetYearlyExportRows(ctx context.Context, pool *pgxpool.Pool, userID, year int) ([]ExportRow, error) {
	query := `
		SELECT s.name, e.month, COALESCE(sb.allocated_amount, 0), e.amount, e.description, e.expense_date
		FROM expenses e
		JOIN segments s ON s.id = e.segment_id
		LEFT JOIN segment_budgets sb
			ON sb.segment_id = e.segment_id AND sb.user_id = $1 AND sb.year = e.year AND sb.month = e.month
		WHERE e.user_id = $1 AND e.year = $2
		ORDER BY e.month, s.name, e.expense_date
	`
	rows, err := pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ExportRow
	for rows.Next() {
		var r ExportRow
		if err := rows.Scan(&r.Segment, &r.Month, &r.Budget, &r.Amount, &r.Description, &r.ExpenseDate); err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
