package handlers

import (
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// GetMonthlyBudget responds with the period's overall ceiling, or JSON
// null when none has been set.
func GetMonthlyBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, month, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		budget, err := db.GetMonthlyBudget(r.Context(), pool, userID, year, month)
		if err != nil {
			log.Printf("ERROR: Failed to get monthly budget %d-%d for user %d: %v", year, month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get budget")
			return
		}
		util.JSON(w, http.StatusOK, budget)
	}
}

func SetMonthlyBudget(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		var req struct {
			Year        int     `json:"year"`
			Month       int     `json:"month"`
			TotalBudget float64 `json:"total_budget"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode set budget request body for user %d: %v", userID, err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		if !util.ValidYear(req.Year) || !util.ValidMonth(req.Month) || !util.ValidAmount(req.TotalBudget) {
			util.Error(w, http.StatusBadRequest, "invalid year, month or amount")
			return
		}

		budget, err := db.UpsertMonthlyBudget(r.Context(), pool, &models.MonthlyBudget{
			UserID:      userID,
			Year:        req.Year,
			Month:       req.Month,
			TotalBudget: req.TotalBudget,
		})
		if err != nil {
			log.Printf("ERROR: Failed to set monthly budget %d-%d for user %d: %v", req.Year, req.Month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to set budget")
			return
		}

		log.Printf("INFO: Set monthly budget %d-%d for user %d", budget.Year, budget.Month, userID)
		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, budget)
	}
}
