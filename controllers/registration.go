package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// CreateRegistration opens a registration in pending_payment. The fee is
// computed server-side and the contestant ID is derived from the row id,
// so duplicate submits cannot mint conflicting identifiers.
func (rc *RegistrationController) CreateRegistration(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := utils.VerifyToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		var req struct {
			EventType    string `json:"event_type"`
			ArtworkCount int    `json:"artwork_count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		amount, err := models.Fee(req.EventType, req.ArtworkCount)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
			return
		}

		tx, err := db.Begin()
		if err != nil {
			log.Errorf("Error starting transaction: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer tx.Rollback()

		res, err := tx.Exec(`INSERT INTO registrations (user_id, event_type, artwork_count, amount, contestant_id, status)
			VALUES (?, ?, ?, ?, '', ?)`,
			userID, req.EventType, req.ArtworkCount, amount, models.StatusPendingPayment)
		if err != nil {
			log.Errorf("Error inserting registration: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to create registration"})
			return
		}

		id, err := res.LastInsertId()
		if err != nil {
			log.Errorf("Error reading registration id: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		contestantID := utils.ContestantID(id, req.EventType)
		if _, err := tx.Exec("UPDATE registrations SET contestant_id = ? WHERE id = ?", contestantID, id); err != nil {
			log.Errorf("Error setting contestant id: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		if err := tx.Commit(); err != nil {
			log.Errorf("Error committing registration: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		reg, err := loadRegistration(db, int(id))
		if err != nil {
			log.Errorf("Error loading registration: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		utils.ResponseJSON(w, reg)
	}
}

// GetRegistration is the status poll that replaces the front-end's
// local-storage "payment success" flag. Owner or admin only.
func (rc *RegistrationController) GetRegistration(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid registration id"})
			return
		}

		reg, err := loadRegistration(db, regID)
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Registration not found"})
			return
		} else if err != nil {
			log.Errorf("Error loading registration: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		if utils.VerifyAdmin(r) != nil {
			userID, err := utils.VerifyToken(r)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
				return
			}
			if reg.UserID != userID {
				utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Not your registration"})
				return
			}
		}

		utils.ResponseJSON(w, reg)
	}
}

// ListMyRegistrations backs the participant dashboard.
func (rc *RegistrationController) ListMyRegistrations(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := utils.VerifyToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		rows, err := db.Query(`SELECT r.id, r.user_id, r.event_type, r.artwork_count, r.amount, r.contestant_id,
			r.status, r.order_id, r.payment_id, r.created_at,
			(SELECT COUNT(*) FROM submission_files f WHERE f.registration_id = r.id)
			FROM registrations r WHERE r.user_id = ? ORDER BY r.id DESC`, userID)
		if err != nil {
			log.Errorf("Error listing registrations: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		registrations := []models.Registration{}
		for rows.Next() {
			var reg models.Registration
			if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventType, &reg.ArtworkCount, &reg.Amount,
				&reg.ContestantID, &reg.Status, &reg.OrderID, &reg.PaymentID, &reg.CreatedAt,
				&reg.FilesUploaded); err != nil {
				log.Errorf("Error scanning registration: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			registrations = append(registrations, reg)
		}

		utils.ResponseJSON(w, registrations)
	}
}

func loadRegistration(db *sql.DB, id int) (models.Registration, error) {
	var reg models.Registration
	var remarks sql.NullString
	err := db.QueryRow(`SELECT r.id, r.user_id, r.event_type, r.artwork_count, r.amount, r.contestant_id,
		r.status, r.order_id, r.payment_id, r.remarks, r.created_at, r.updated_at,
		(SELECT COUNT(*) FROM submission_files f WHERE f.registration_id = r.id)
		FROM registrations r WHERE r.id = ?`, id).Scan(
		&reg.ID, &reg.UserID, &reg.EventType, &reg.ArtworkCount, &reg.Amount, &reg.ContestantID,
		&reg.Status, &reg.OrderID, &reg.PaymentID, &remarks, &reg.CreatedAt, &reg.UpdatedAt,
		&reg.FilesUploaded)
	if remarks.Valid {
		reg.Remarks = remarks.String
	}
	return reg, err
}
