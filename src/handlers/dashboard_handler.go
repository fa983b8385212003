package handlers

import (
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthlyDashboard returns per-segment budget/spent/remaining for one
// period plus grand totals. Every segment the user owns appears, zero
// filled when it has no allocation or spend.
func MonthlyDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, month, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		cacheKey := fmt.Sprintf("dashboard:%d:month:%d-%d", userID, year, month)
		if cached, found := cache.GetDashboardCache(cacheKey); found {
			util.JSON(w, http.StatusOK, cached)
			return
		}

		segments, err := db.GetMonthlyRollup(r.Context(), pool, userID, year, month)
		if err != nil {
			log.Printf("ERROR: Failed to get monthly dashboard %d-%d for user %d: %v", year, month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get dashboard")
			return
		}

		dashboard := models.BuildDashboard(segments)
		cache.SetDashboardCache(userID, cacheKey, dashboard)
		util.JSON(w, http.StatusOK, dashboard)
	}
}

func YearlyDashboard(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, ok := parseYear(w, r)
		if !ok {
			return
		}

		cacheKey := fmt.Sprintf("dashboard:%d:year:%d", userID, year)
		if cached, found := cache.GetDashboardCache(cacheKey); found {
			util.JSON(w, http.StatusOK, cached)
			return
		}

		segments, err := db.GetYearlyRollup(r.Context(), pool, userID, year)
		if err != nil {
			log.Printf("ERROR: Failed to get yearly dashboard %d for user %d: %v", year, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get dashboard")
			return
		}

		dashboard := models.BuildDashboard(segments)
		cache.SetDashboardCache(userID, cacheKey, dashboard)
		util.JSON(w, http.StatusOK, dashboard)
	}
}

func YearMonthlyBreakdown(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, ok := parseYear(w, r)
		if !ok {
			return
		}

		cacheKey := fmt.Sprintf("dashboard:%d:breakdown:%d", userID, year)
		if cached, found := cache.GetDashboardCache(cacheKey); found {
			util.JSON(w, http.StatusOK, cached)
			return
		}

		breakdown, err := db.GetYearMonthlyBreakdown(r.Context(), pool, userID, year)
		if err != nil {
			log.Printf("ERROR: Failed to get monthly breakdown %d for user %d: %v", year, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get breakdown")
			return
		}
		if breakdown == nil {
			breakdown = []models.MonthBreakdown{}
		}

		cache.SetDashboardCache(userID, cacheKey, breakdown)
		util.JSON(w, http.StatusOK, breakdown)
	}
}
