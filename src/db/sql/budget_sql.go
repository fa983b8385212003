package db

import (
	"budget-tracker-server/src/models"
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetMonthlyBudget returns nil without error when the period has no
// budget yet; the API renders that as a JSON null.
func GetMonthlyBudget(ctx context.Context, pool *pgxpool.Pool, userID, year, month int) (*models.MonthlyBudget, error) {
	query := `
		SELECT id, user_id, year, month, total_budget, created_at
		FROM monthly_budgets
		WHERE user_id = $1 AND year = $2 AND month = $3
	`
	var b models.MonthlyBudget
	err := pool.QueryRow(ctx, query, userID, year, month).
		Scan(&b.ID, &b.UserID, &b.Year, &b.Month, &b.TotalBudget, &b.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpsertMonthlyBudget sets the period's ceiling, replacing any previous
// value. Keyed on (user_id, year, month), so repeating the call leaves
// exactly one row.
func UpsertMonthlyBudget(ctx context.Context, pool *pgxpool.Pool, budget *models.MonthlyBudget) (*models.MonthlyBudget, error) {
	query := `
		INSERT INTO monthly_budgets (user_id, year, month, total_budget)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, year, month)
		DO UPDATE SET total_budget = EXCLUDED.total_budget
		RETURNING id, user_id, year, month, total_budget, created_at
	`
	var b models.MonthlyBudget
	err := pool.QueryRow(ctx, query, budget.UserID, budget.Year, budget.Month, budget.TotalBudget).
		Scan(&b.ID, &b.UserID, &b.Year, &b.Month, &b.TotalBudget, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
