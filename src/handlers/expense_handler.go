package handlers

import (
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/notify"
	"budget-tracker-server/src/util"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type expenseRequest struct {
	SegmentID   int     `json:"segment_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	ExpenseDate string  `json:"expense_date"`
}

func GetExpensesForMonth(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, month, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		expenses, err := db.GetExpensesForMonth(r.Context(), pool, userID, year, month)
		if err != nil {
			log.Printf("ERROR: Failed to get expenses %d-%d for user %d: %v", year, month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get expenses")
			return
		}
		if expenses == nil {
			expenses = []models.Expense{}
		}
		util.JSON(w, http.StatusOK, expenses)
	}
}

func GetExpensesForYear(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, ok := parseYear(w, r)
		if !ok {
			return
		}

		expenses, err := db.GetExpensesForYear(r.Context(), pool, userID, year)
		if err != nil {
			log.Printf("ERROR: Failed to get expenses for year %d for user %d: %v", year, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get expenses")
			return
		}
		if expenses == nil {
			expenses = []models.Expense{}
		}
		util.JSON(w, http.StatusOK, expenses)
	}
}

func CreateExpense(pool *pgxpool.Pool, publisher notify.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create expense request body for user %d: %v", userID, err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !util.ValidAmount(req.Amount) {
			util.Error(w, http.StatusBadRequest, "invalid amount")
			return
		}

		// Period fields always come from the date, never from the client.
		year, month, err := util.PeriodFromDate(req.ExpenseDate)
		if err != nil {
			util.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		created, err := db.CreateExpense(r.Context(), pool, &models.Expense{
			UserID:      userID,
			SegmentID:   req.SegmentID,
			Year:        year,
			Month:       month,
			Amount:      req.Amount,
			Description: req.Description,
			ExpenseDate: req.ExpenseDate,
		})
		if err == pgx.ErrNoRows {
			util.Error(w, http.StatusNotFound, "segment not found")
			return
		}
		if err != nil {
			log.Printf("ERROR: Failed to create expense for user %d: %v", userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to create expense")
			return
		}

		log.Printf("INFO: Created expense id %d for user %d, segment %d", created.ID, userID, created.SegmentID)
		cache.ClearDashboardCache(userID)
		maybePublishAlert(r, pool, publisher, userID, created.SegmentID, year, month)
		util.JSON(w, http.StatusCreated, created)
	}
}

func UpdateExpense(pool *pgxpool.Pool, publisher notify.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		expenseID, err := urlInt(r, "expense_id")
		if err != nil {
			util.Error(w, http.StatusBadRequest, "invalid expense id")
			return
		}
		var req expenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !util.ValidAmount(req.Amount) {
			util.Error(w, http.StatusBadRequest, "invalid amount")
			return
		}

		year, month, err := util.PeriodFromDate(req.ExpenseDate)
		if err != nil {
			util.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		changes, err := db.UpdateExpense(r.Context(), pool, &models.Expense{
			ID:          expenseID,
			UserID:      userID,
			SegmentID:   req.SegmentID,
			Year:        year,
			Month:       month,
			Amount:      req.Amount,
			Description: req.Description,
			ExpenseDate: req.ExpenseDate,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update expense id %d for user %d: %v", expenseID, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to update expense")
			return
		}

		cache.ClearDashboardCache(userID)
		if changes > 0 {
			maybePublishAlert(r, pool, publisher, userID, req.SegmentID, year, month)
		}
		util.JSON(w, http.StatusOK, map[string]interface{}{"message": "expense updated", "changes": changes})
	}
}

func DeleteExpense(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		expenseID, err := urlInt(r, "expense_id")
		if err != nil {
			util.Error(w, http.StatusBadRequest, "invalid expense id")
			return
		}

		changes, err := db.DeleteExpense(r.Context(), pool, userID, expenseID)
		if err != nil {
			log.Printf("ERROR: Failed to delete expense id %d for user %d: %v", expenseID, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to delete expense")
			return
		}

		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, map[string]interface{}{"message": "expense deleted", "changes": changes})
	}
}

// maybePublishAlert raises an over-budget alert after a successful
// expense write. Publish failures are logged, never surfaced: the write
// already happened.
func maybePublishAlert(r *http.Request, pool *pgxpool.Pool, publisher notify.Publisher, userID, segmentID, year, month int) {
	name, budget, spent, err := db.GetSegmentPeriodStatus(r.Context(), pool, userID, segmentID, year, month)
	if err != nil {
		log.Printf("ERROR: Failed to check budget status for user %d, segment %d: %v", userID, segmentID, err)
		return
	}
	if !notify.OverBudget(spent, budget) {
		return
	}

	alert := notify.Alert{
		UserID:      userID,
		SegmentID:   segmentID,
		SegmentName: name,
		Year:        year,
		Month:       month,
		Spent:       spent,
		Budget:      budget,
		Message:     fmt.Sprintf("%s is over budget for %d-%02d: spent %.2f of %.2f", name, year, month, spent, budget),
	}
	if err := publisher.Publish(alert); err != nil {
		log.Printf("ERROR: Failed to publish over-budget alert for user %d, segment %d: %v", userID, segmentID, err)
	}
}
