package handlers

import (
	"budget-tracker-server/src/util"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func requestUserID(r *http.Request) int {
	return r.Context().Value("user_id").(int)
}

func urlInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// parsePeriod reads and validates the {year}/{month} URL params.
// Writes the error response itself and reports ok=false on failure.
func parsePeriod(w http.ResponseWriter, r *http.Request) (year, month int, ok bool) {
	year, errY := urlInt(r, "year")
	month, errM := urlInt(r, "month")
	if errY != nil || errM != nil || !util.ValidYear(year) || !util.ValidMonth(month) {
		util.Error(w, http.StatusBadRequest, "invalid year or month")
		return 0, 0, false
	}
	return year, month, true
}

func parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := urlInt(r, "year")
	if err != nil || !util.ValidYear(year) {
		util.Error(w, http.StatusBadRequest, "invalid year")
		return 0, false
	}
	return year, true
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
