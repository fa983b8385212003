package handlers

import (
	cache "budget-tracker-server/src/db"
	db "budget-tracker-server/src/db/sql"
	"budget-tracker-server/src/models"
	"budget-tracker-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

func GetSegments(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		segments, err := db.GetSegmentsForUser(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to get segments for user %d: %v", userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to get segments")
			return
		}
		if segments == nil {
			segments = []models.Segment{}
		}
		util.JSON(w, http.StatusOK, segments)
	}
}

func CreateSegment(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create segment request body for user %d: %v", userID, err)
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if !util.ValidSegmentName(req.Name) {
			util.Error(w, http.StatusBadRequest, "segment name is required")
			return
		}

		created, err := db.CreateSegment(r.Context(), pool, userID, req.Name)
		if err != nil {
			if isDuplicateKey(err) {
				util.Error(w, http.StatusConflict, "segment name already exists")
				return
			}
			log.Printf("ERROR: Failed to create segment for user %d: %v", userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to create segment")
			return
		}

		log.Printf("INFO: Created segment id %d (%s) for user %d", created.ID, created.Name, userID)
		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusCreated, created)
	}
}

func RenameSegment(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		segmentID, err := urlInt(r, "segment_id")
		if err != nil {
			util.Error(w, http.StatusBadRequest, "invalid segment id")
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			util.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if !util.ValidSegmentName(req.Name) {
			util.Error(w, http.StatusBadRequest, "segment name is required")
			return
		}

		changes, err := db.RenameSegment(r.Context(), pool, userID, segmentID, req.Name)
		if err != nil {
			if isDuplicateKey(err) {
				util.Error(w, http.StatusConflict, "segment name already exists")
				return
			}
			log.Printf("ERROR: Failed to rename segment id %d for user %d: %v", segmentID, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to update segment")
			return
		}

		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, map[string]interface{}{"message": "segment updated", "changes": changes})
	}
}

// DeleteSegment removes the segment and, through the cascade, all its
// budgets and expenses. The client confirms before calling; there is no
// undo.
func DeleteSegment(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := requestUserID(r)
		segmentID, err := urlInt(r, "segment_id")
		if err != nil {
			util.Error(w, http.StatusBadRequest, "invalid segment id")
			return
		}

		changes, err := db.DeleteSegment(r.Context(), pool, userID, segmentID)
		if err != nil {
			log.Printf("ERROR: Failed to delete segment id %d for user %d: %v", segmentID, userID, err)
			util.Error(w, http.StatusInternalServerError, "failed to delete segment")
			return
		}

		log.Printf("INFO: Deleted segment id %d for user %d (%d rows)", segmentID, userID, changes)
		cache.ClearDashboardCache(userID)
		util.JSON(w, http.StatusOK, map[string]interface{}{"message": "segment deleted", "changes": changes})
	}
}
