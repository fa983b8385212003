package models

import "time"

// MonthlyBudget is the overall spending ceiling for one (year, month).
// It is informational only and is never reconciled against the sum of
// segment allocations for the same period.
type MonthlyBudget struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	TotalBudget float64   `json:"total_budget"`
	CreatedAt   time.Time `json:"created_at"`
}
