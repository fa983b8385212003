package db

import (
	"budget-tracker-server/src/models"
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func scanExpenses(rows pgx.Rows) ([]models.Expense, error) {
	defer rows.Close()
	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var date time.Time
		err := rows.Scan(&e.ID, &e.UserID, &e.SegmentID, &e.SegmentName,
			&e.Year, &e.Month, &e.Amount, &e.Description, &date, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.ExpenseDate = date.Format("2006-01-02")
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

const expenseColumns = `
	e.id, e.user_id, e.segment_id, s.name, e.year, e.month,
	e.amount, COALESCE(e.description, ''), e.expense_date, e.created_at`

func GetExpensesForMonth(ctx context.Context, pool *pgxpool.Pool, userID, year, month int) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN segments s ON s.id = e.segment_id
		WHERE e.user_id = $1 AND e.year = $2 AND e.month = $3
		ORDER BY e.expense_date DESC, e.id DESC
	`
	rows, err := pool.Query(ctx, query, userID, year, month)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

func GetExpensesForYear(ctx context.Context, pool *pgxpool.Pool, userID, year int) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		JOIN segments s ON s.id = e.segment_id
		WHERE e.user_id = $1 AND e.year = $2
		ORDER BY e.expense_date DESC, e.id DESC
	`
	rows, err := pool.Query(ctx, query, userID, year)
	if err != nil {
		return nil, err
	}
	return scanExpenses(rows)
}

// CreateExpense inserts a transaction. Year and month on the model must
// already be derived from the expense date by the caller. The insert
// selects from segments so a segment owned by another user matches
// nothing and surfaces as pgx.ErrNoRows.
func CreateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, segment_id, year, month, amount, description, expense_date)
		SELECT $1, s.id, $3, $4, $5, $6, $7::date
		FROM segments s
		WHERE s.id = $2 AND s.user_id = $1
		RETURNING id, user_id, segment_id, year, month, amount, COALESCE(description, ''), expense_date, created_at
	`
	var e models.Expense
	var date time.Time
	err := pool.QueryRow(ctx, query, expense.UserID, expense.SegmentID,
		expense.Year, expense.Month, expense.Amount, expense.Description, expense.ExpenseDate).
		Scan(&e.ID, &e.UserID, &e.SegmentID, &e.Year, &e.Month, &e.Amount, &e.Description, &date, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.ExpenseDate = date.Format("2006-01-02")
	return &e, nil
}

// UpdateExpense returns the number of rows changed; a foreign or missing
// id is zero, not an error. The EXISTS guard keeps the row from being
// moved onto another user's segment.
func UpdateExpense(ctx context.Context, pool *pgxpool.Pool, expense *models.Expense) (int64, error) {
	query := `
		UPDATE expenses
		SET segment_id = $3, year = $4, month = $5, amount = $6, description = $7, expense_date = $8::date
		WHERE id = $2 AND user_id = $1
		  AND EXISTS (SELECT 1 FROM segments s WHERE s.id = $3 AND s.user_id = $1)
	`
	cmd, err := pool.Exec(ctx, query, expense.UserID, expense.ID, expense.SegmentID,
		expense.Year, expense.Month, expense.Amount, expense.Description, expense.ExpenseDate)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func DeleteExpense(ctx context.Context, pool *pgxpool.Pool, userID, expenseID int) (int64, error) {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	cmd, err := pool.Exec(ctx, query, expenseID, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// GetSegmentPeriodStatus reports a segment's allocation and spend for
// one period, used to decide whether an expense write crossed the
// budget line.
func GetSegmentPeriodStatus(ctx context.Context, pool *pgxpool.Pool, userID, segmentID, year, month int) (name string, budget, spent float64, err error) {
	query := `
		SELECT s.name,
		       COALESCE((SELECT allocated_amount FROM segment_budgets
		                 WHERE user_id = $1 AND segment_id = $2 AND year = $3 AND month = $4), 0),
		       COALESCE((SELECT SUM(amount) FROM expenses
		                 WHERE user_id = $1 AND segment_id = $2 AND year = $3 AND month = $4), 0)
		FROM segments s
		WHERE s.id = $2 AND s.user_id = $1
	`
	err = pool.QueryRow(ctx, query, userID, segmentID, year, month).Scan(&name, &budget, &spent)
	return name, budget, spent, err
}
