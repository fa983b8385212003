package handlers

import (
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSegmentBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, month, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		budgets, err := db.GetSegmentBudgets(r.Context(), pool, userID, year, month)
		if err != nil {
			log.Printf("ERROR: Failed to get segment budgets %d-%d for user %d: %v", year, month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get segment budgets")
			return
		}
		if budgets == nil {
			budgets = []models.SegmentBudget{}
		}
		util.JSON(w, http.StatusOK, budgets)
	}
}

func SetSegmentBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		var req struct {
			SegmentID       int     `json:"segment_id"`
			Year            int     `json:"year"`
			Month           int     `json:"month"`
			AllocatedAmount float64 `json:"allocated_amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode set segment budget request body for user %d: %v", userID, err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !util.ValidYear(req.Year) || !util.ValidMonth(req.Month) || !util.ValidAmount(req.AllocatedAmount) {
			util.Error(w, http.StatusBadRequest, "invalid year, month or amount")
			return
		}

		budget, err := db.UpsertSegmentBudget(r.Context(), pool, &models.SegmentBudget{
			UserID:          userID,
			SegmentID:       req.SegmentID,
			Year:            req.Year,
			Month:           req.Month,
			AllocatedAmount: req.AllocatedAmount,
		})
		if err == pgx.ErrNoRows {
			util.Error(w, http.StatusNotFound, "segment not found")
			return
		}
		if err != nil {
			log.Printf("ERROR: Failed to set segment budget for user %d, segment %d: %v", userID, req.SegmentID, err)
			util.Error(w, http.StatusInternalServerError, "failed to set segment budget")
			return
		}

		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, budget)
	}
}

// BulkSetSegmentBudgets upserts a whole period's allocations in one
// transaction: all or nothing.
func BulkSetSegmentBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		var req struct {
			Budgets []struct {
				SegmentID       int     `json:"segment_id"`
				Year            int     `json:"year"`
				Month           int     `json:"month"`
				AllocatedAmount float64 `json:"allocated_amount"`
			} `json:"budgets"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode bulk segment budget request body for user %d: %v", userID, err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if len(req.Budgets) == 0 {
			util.Error(w, http.StatusBadRequest, "budgets array is required")
			return
		}

		budgets := make([]models.SegmentBudget, 0, len(req.Budgets))
		for _, b := range req.Budgets {
			if !util.ValidYear(b.Year) || !util.ValidMonth(b.Month) || !util.ValidAmount(b.AllocatedAmount) {
				util.Error(w, http.StatusBadRequest, "invalid year, month or amount")
				return
			}
			budgets = append(budgets, models.SegmentBudget{
				SegmentID:       b.SegmentID,
				Year:            b.Year,
				Month:           b.Month,
				AllocatedAmount: b.AllocatedAmount,
			})
		}

		err := db.BulkUpsertSegmentBudgets(r.Context(), pool, userID, budgets)
		if err == pgx.ErrNoRows {
			util.Error(w, http.StatusNotFound, "segment not found")
			return
		}
		if err != nil {
			log.Printf("ERROR: Failed bulk segment budget set for user %d: %v", userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to set segment budgets")
			return
		}

		log.Printf("INFO: Bulk set %d segment budgets for user %d", len(budgets), userID)
		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// CopyPreviousBudgets copies the previous period's allocations into the
// requested one, never overwriting rows that already exist there.
func CopyPreviousBudgets(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		var req struct {
			Year      int `json:"year"`
			Month     int `json:"month"`
			PrevYear  int `json:"prev_year"`
			PrevMonth int `json:"prev_month"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode copy-previous request body for user %d: %v", userID, err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !util.ValidYear(req.Year) || !util.ValidMonth(req.Month) {
			util.Error(w, http.StatusBadRequest, "invalid year or month")
			return
		}
		if req.PrevYear == 0 && req.PrevMonth == 0 {
			req.PrevYear, req.PrevMonth = util.PreviousPeriod(req.Year, req.Month)
		}
		if !util.ValidYear(req.PrevYear) || !util.ValidMonth(req.PrevMonth) {
			util.Error(w, http.StatusBadRequest, "invalid source year or month")
			return
		}

		changes, err := db.CopyPreviousSegmentBudgets(r.Context(), pool, userID,
			req.PrevYear, req.PrevMonth, req.Year, req.Month)
		if err != nil {
			log.Printf("ERROR: Failed to copy budgets %d-%d -> %d-%d for user %d: %v",
				req.PrevYear, req.PrevMonth, req.Year, req.Month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to copy budgets")
			return
		}

		log.Printf("INFO: Copied %d segment budgets %d-%d -> %d-%d for user %d",
			changes, req.PrevYear, req.PrevMonth, req.Year, req.Month, userID)
		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, map[string]interface{}{"message": "previous budgets copied", "changes": changes})
	}
}
