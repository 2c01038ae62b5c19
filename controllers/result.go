package controllers

import (
	"database/sql"
	"net/http"
	"strings"

	"kalakriti/models"
	"kalakriti/utils"

	log "github.com/sirupsen/logrus"
)

// GetSeasons returns the de-duplicated season labels present in the
// published results for an event type. There is no independent season
// registry; a season exists when results mention it.
func (rc *ResultController) GetSeasons(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventType := r.URL.Query().Get("event")
		if eventType == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "event query parameter is required"})
			return
		}

		rows, err := db.Query(`SELECT DISTINCT season FROM result_sets WHERE event_type = ? ORDER BY season`, eventType)
		if err != nil {
			log.Errorf("Error querying seasons: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		seasons := []string{}
		for rows.Next() {
			var s string
			if err := rows.Scan(&s); err != nil {
				log.Errorf("Error scanning season: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			seasons = append(seasons, s)
		}

		utils.ResponseJSON(w, seasons)
	}
}

// GetResults renders the three fixed age-category leaderboards plus the
// top-100 list for an event and season. Entries come back ordered by
// stored position with the row id as tiebreak, so the same selection
// always renders the same order.
func (rc *ResultController) GetResults(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventType := r.URL.Query().Get("event")
		season := r.URL.Query().Get("season")
		if eventType == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "event query parameter is required"})
			return
		}

		var setID int
		var err error
		if season != "" {
			err = db.QueryRow(`SELECT id FROM result_sets WHERE event_type = ? AND season = ?
				ORDER BY is_latest DESC, id DESC LIMIT 1`, eventType, season).Scan(&setID)
		} else {
			err = db.QueryRow(`SELECT id, season FROM result_sets WHERE event_type = ? AND is_latest = 1
				ORDER BY id DESC LIMIT 1`, eventType).Scan(&setID, &season)
		}
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "No results published for this selection"})
			return
		} else if err != nil {
			log.Errorf("Error finding result set: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		rows, err := db.Query(`SELECT id, result_set_id, contestant_id, participant_name, category, position, score, remarks
			FROM result_entries WHERE result_set_id = ? ORDER BY position, id`, setID)
		if err != nil {
			log.Errorf("Error querying result entries: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		board := models.Leaderboards{
			EventType: eventType,
			Season:    season,
			Adult:     []models.ResultEntry{},
			Children:  []models.ResultEntry{},
			Preschool: []models.ResultEntry{},
			Top100:    []models.ResultEntry{},
		}
		for rows.Next() {
			var e models.ResultEntry
			var remarks sql.NullString
			if err := rows.Scan(&e.ID, &e.ResultSetID, &e.ContestantID, &e.ParticipantName,
				&e.Category, &e.Position, &e.Score, &remarks); err != nil {
				log.Errorf("Error scanning result entry: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			if remarks.Valid {
				e.Remarks = remarks.String
			}
			switch e.Category {
			case models.CategoryAdult:
				board.Adult = append(board.Adult, e)
			case models.CategoryChildren:
				board.Children = append(board.Children, e)
			case models.CategoryPreschool:
				board.Preschool = append(board.Preschool, e)
			case models.CategoryTop100:
				board.Top100 = append(board.Top100, e)
			}
		}

		utils.ResponseJSON(w, board)
	}
}

// SearchResults scans every published entry for a substring match on
// contestant ID or participant name.
func (rc *ResultController) SearchResults(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "q query parameter is required"})
			return
		}

		pattern := "%" + q + "%"
		rows, err := db.Query(`SELECT e.id, e.result_set_id, e.contestant_id, e.participant_name,
			e.category, e.position, e.score, e.remarks, s.event_type, s.season
			FROM result_entries e
			JOIN result_sets s ON e.result_set_id = s.id
			WHERE e.contestant_id LIKE ? OR e.participant_name LIKE ?
			ORDER BY s.id DESC, e.position, e.id`, pattern, pattern)
		if err != nil {
			log.Errorf("Error searching results: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		entries := []models.ResultEntry{}
		for rows.Next() {
			var e models.ResultEntry
			var remarks sql.NullString
			if err := rows.Scan(&e.ID, &e.ResultSetID, &e.ContestantID, &e.ParticipantName,
				&e.Category, &e.Position, &e.Score, &remarks, &e.EventType, &e.Season); err != nil {
				log.Errorf("Error scanning search result: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			if remarks.Valid {
				e.Remarks = remarks.String
			}
			entries = append(entries, e)
		}

		utils.ResponseJSON(w, entries)
	}
}
