package models

import "time"

// Expense is a single transaction. Year and Month are derived from
// ExpenseDate on every write and must never be trusted as input.
type Expense struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	SegmentID   int       `json:"segment_id"`
	SegmentName string    `json:"segment_name,omitempty"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	ExpenseDate string    `json:"expense_date"`
	CreatedAt   time.Time `json:"created_at"`
}
