package models

import "time"

// SegmentBudget is the amount allocated to one segment for one (year, month).
type SegmentBudget struct {
	ID              int       `json:"id"`
	UserID          int       `json:"user_id"`
	SegmentID       int       `json:"segment_id"`
	SegmentName     string    `json:"segment_name,omitempty"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	AllocatedAmount float64   `json:"allocated_amount"`
	CreatedAt       time.Time `json:"created_at"`
}
