package controllers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// resultColumns is the template column order for bulk uploads.
var resultColumns = []string{"contestant_id", "participant_name", "category", "position", "score", "remarks"}

// UploadResults publishes a result set in bulk from an XLSX or CSV file.
// The form carries event_type and season; the file carries the entries.
func (ac *AdminController) UploadResults(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		if err := r.ParseMultipartForm(10 << 20); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form data"})
			return
		}

		eventType := r.FormValue("event_type")
		season := strings.TrimSpace(r.FormValue("season"))
		if _, ok := models.EventByType(eventType); !ok {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Unknown event type: " + eventType})
			return
		}
		if season == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "season is required"})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "file field is required"})
			return
		}
		defer file.Close()

		records, err := parseResultRows(file, header)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
			return
		}
		if len(records) == 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "No result rows found in file"})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			log.Errorf("Error starting transaction: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer tx.Rollback()

		res, err := tx.Exec(`INSERT INTO result_sets (event_type, season, is_latest) VALUES (?, ?, 0)`,
			eventType, season)
		if err != nil {
			log.Errorf("Error inserting result set: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create result set"})
			return
		}
		setID, _ := res.LastInsertId()

		for _, e := range records {
			if _, err := tx.Exec(`INSERT INTO result_entries
				(result_set_id, contestant_id, participant_name, category, position, score, remarks)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				setID, e.ContestantID, e.ParticipantName, e.Category, e.Position, e.Score, e.Remarks); err != nil {
				log.Errorf("Error inserting result entry: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to insert result entries"})
				return
			}
		}

		if err := tx.Commit(); err != nil {
			log.Errorf("Error committing result set: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		utils.ResponseJSON(w, models.ResultSet{
			ID:         int(setID),
			EventType:  eventType,
			Season:     season,
			EntryCount: len(records),
		})
	}
}

// parseResultRows reads the uploaded spreadsheet into entries. The first
// row is the header and is skipped.
func parseResultRows(file multipart.File, header *multipart.FileHeader) ([]models.ResultEntry, error) {
	var rows [][]string
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".xlsx":
		f, err := excelize.OpenReader(file)
		if err != nil {
			return nil, fmt.Errorf("could not read xlsx file: %v", err)
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		rows, err = f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("could not read xlsx rows: %v", err)
		}
	case ".csv":
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("could not read csv file: %v", err)
			}
			rows = append(rows, record)
		}
	default:
		return nil, fmt.Errorf("unsupported file type %s, expected .xlsx or .csv", ext)
	}

	entries := []models.ResultEntry{}
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("row %d has %d columns, expected at least 5 (%s)",
				i+1, len(row), strings.Join(resultColumns, ", "))
		}

		var e models.ResultEntry
		e.ContestantID = strings.TrimSpace(row[0])
		e.ParticipantName = strings.TrimSpace(row[1])
		e.Category = strings.ToLower(strings.TrimSpace(row[2]))
		if e.ContestantID == "" || e.ParticipantName == "" {
			return nil, fmt.Errorf("row %d: contestant_id and participant_name are required", i+1)
		}
		if !models.ValidCategory(e.Category) {
			return nil, fmt.Errorf("row %d: unknown category %q (adult, children, preschool or top100)", i+1, e.Category)
		}

		pos, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || pos <= 0 {
			return nil, fmt.Errorf("row %d: position must be a positive number", i+1)
		}
		e.Position = pos

		score, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: score must be a number", i+1)
		}
		e.Score = score

		if len(row) > 5 {
			e.Remarks = strings.TrimSpace(row[5])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarkLatest flags one result set as latest and clears the flag on every
// other set of the same event type, in one transaction.
func (ac *AdminController) MarkLatest(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		setID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid result set id"})
			return
		}

		var eventType string
		err = db.QueryRow("SELECT event_type FROM result_sets WHERE id = ?", setID).Scan(&eventType)
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Result set not found"})
			return
		} else if err != nil {
			log.Errorf("Error loading result set: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			log.Errorf("Error starting transaction: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer tx.Rollback()

		if _, err := tx.Exec("UPDATE result_sets SET is_latest = 0 WHERE event_type = ?", eventType); err != nil {
			log.Errorf("Error clearing latest flags: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update result sets"})
			return
		}
		if _, err := tx.Exec("UPDATE result_sets SET is_latest = 1 WHERE id = ?", setID); err != nil {
			log.Errorf("Error setting latest flag: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update result set"})
			return
		}
		if err := tx.Commit(); err != nil {
			log.Errorf("Error committing latest flag: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"message":    "Result set marked as latest.",
			"id":         setID,
			"event_type": eventType,
		})
	}
}

// ListResultSets backs the admin results panel.
func (ac *AdminController) ListResultSets(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		rows, err := db.Query(`SELECT s.id, s.event_type, s.season, s.is_latest, s.published_at,
			(SELECT COUNT(*) FROM result_entries e WHERE e.result_set_id = s.id)
			FROM result_sets s ORDER BY s.id DESC`)
		if err != nil {
			log.Errorf("Error listing result sets: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		sets := []models.ResultSet{}
		for rows.Next() {
			var s models.ResultSet
			if err := rows.Scan(&s.ID, &s.EventType, &s.Season, &s.IsLatest, &s.PublishedAt, &s.EntryCount); err != nil {
				log.Errorf("Error scanning result set: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			sets = append(sets, s)
		}

		utils.ResponseJSON(w, sets)
	}
}
