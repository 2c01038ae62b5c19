package controllers

import (
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

func adminCredentials() (string, string) {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "kalakriti@admin2025"
	}
	return username, password
}

// Login authenticates the back-office with the fixed credential pair and
// issues an admin-role token. Any other pair gets 401 and no token.
func (ac *AdminController) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		username, password := adminCredentials()
		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(password)) == 1
		if !userOK || !passOK {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: "Invalid admin credentials."})
			return
		}

		token, err := utils.GenerateToken(models.User{ID: 0, Role: "admin"}, 12*time.Hour)
		if err != nil {
			log.Errorf("Error generating admin token: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		utils.ResponseJSON(w, map[string]string{"token": token, "role": "admin"})
	}
}

// GetParticipants lists registrations joined with their users, for the
// admin participants panel. Filterable by ?event= and ?status=.
func (ac *AdminController) GetParticipants(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		query := `SELECT r.id, r.user_id, r.event_type, r.artwork_count, r.amount, r.contestant_id,
			r.status, r.order_id, r.payment_id, r.remarks, r.created_at,
			u.first_name, u.last_name, u.email,
			(SELECT COUNT(*) FROM submission_files f WHERE f.registration_id = r.id)
			FROM registrations r JOIN users u ON r.user_id = u.id WHERE 1=1`
		args := []interface{}{}
		if event := r.URL.Query().Get("event"); event != "" {
			query += " AND r.event_type = ?"
			args = append(args, event)
		}
		if status := r.URL.Query().Get("status"); status != "" {
			query += " AND r.status = ?"
			args = append(args, status)
		}
		query += " ORDER BY r.id DESC"

		rows, err := db.Query(query, args...)
		if err != nil {
			log.Errorf("Error listing participants: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		participants := []models.Registration{}
		for rows.Next() {
			var reg models.Registration
			var remarks sql.NullString
			var firstName, lastName string
			if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventType, &reg.ArtworkCount, &reg.Amount,
				&reg.ContestantID, &reg.Status, &reg.OrderID, &reg.PaymentID, &remarks, &reg.CreatedAt,
				&firstName, &lastName, &reg.ParticipantEmail, &reg.FilesUploaded); err != nil {
				log.Errorf("Error scanning participant: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			if remarks.Valid {
				reg.Remarks = remarks.String
			}
			reg.ParticipantName = strings.TrimSpace(firstName + " " + lastName)
			participants = append(participants, reg)
		}

		utils.ResponseJSON(w, participants)
	}
}

// PatchParticipant lets the back-office adjust a registration's status
// or remarks, e.g. to unblock a participant whose upload failed.
func (ac *AdminController) PatchParticipant(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		regID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid registration id"})
			return
		}

		var req struct {
			Status  string `json:"status"`
			Remarks string `json:"remarks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if req.Status != "" &&
			req.Status != models.StatusPendingPayment &&
			req.Status != models.StatusPaid &&
			req.Status != models.StatusSubmitted {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Unknown status: " + req.Status})
			return
		}

		res, err := db.Exec(`UPDATE registrations SET
			status = CASE WHEN ? != '' THEN ? ELSE status END,
			remarks = CASE WHEN ? != '' THEN ? ELSE remarks END,
			updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			req.Status, req.Status, req.Remarks, req.Remarks, regID)
		if err != nil {
			log.Errorf("Error patching registration: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update registration"})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Registration not found"})
			return
		}

		reg, err := loadRegistration(db, regID)
		if err != nil {
			log.Errorf("Error reloading registration: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		utils.ResponseJSON(w, reg)
	}
}
