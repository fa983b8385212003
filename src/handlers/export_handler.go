package handlers

import (
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/util"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
)

var monthlyExportHeaders = []string{"Segment", "Budget", "Expense Amount", "Description", "Date"}
var yearlyExportHeaders = []string{"Segment", "Month", "Budget", "Expense Amount", "Description", "Date"}

func writeCSVAttachment(w http.ResponseWriter, filename string, headers []string, rows [][]string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := util.WriteCSV(w, headers, rows); err != nil {
		log.Printf("ERROR: Failed to write CSV response: %v", err)
	}
}

func ExportMonth(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, month, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		data, err := db.GetMonthlyExportRows(r.Context(), pool, userID, year, month)
		if err != nil {
			log.Printf("ERROR: Failed to get monthly export %d-%d for user %d: %v", year, month, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to export report")
			return
		}

		rows := make([][]string, 0, len(data))
		for _, d := range data {
			rows = append(rows, []string{
				d.Segment,
				util.CSVAmount(d.Budget),
				util.CSVAmountPtr(d.Amount),
				util.CSVString(d.Description),
				util.CSVDate(d.ExpenseDate),
			})
		}

		filename := fmt.Sprintf("budget_report_%d_%02d.csv", year, month)
		writeCSVAttachment(w, filename, monthlyExportHeaders, rows)
	}
}

func ExportYear(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		year, ok := parseYear(w, r)
		if !ok {
			return
		}

		data, err := db.GetYearlyExportRows(r.Context(), pool, userID, year)
		if err != nil {
			log.Printf("ERROR: Failed to get yearly export %d for user %d: %v", year, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to export report")
			return
		}

		rows := make([][]string, 0, len(data))
		for _, d := range data {
			rows = append(rows, []string{
				d.Segment,
				util.CSVInt(d.Month),
				util.CSVAmount(d.Budget),
				util.CSVAmountPtr(d.Amount),
				util.CSVString(d.Description),
				util.CSVDate(d.ExpenseDate),
			})
		}

		filename := fmt.Sprintf("budget_report_%d.csv", year)
		writeCSVAttachment(w, filename, yearlyExportHeaders, rows)
	}
}
