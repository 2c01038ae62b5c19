package controllers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// CreateQuery receives a contact-form submission and forwards it to the
// admin mailbox when SMTP is configured.
func (qc *QueryController) CreateQuery(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query models.Query
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if query.FullName == "" || query.Email == "" || query.Message == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Full name, email, and message are required"})
			return
		}
		if !utils.IsEmail(query.Email) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid email format."})
			return
		}

		res, err := db.Exec(`INSERT INTO queries (full_name, email, message, status) VALUES (?, ?, ?, 'open')`,
			query.FullName, query.Email, query.Message)
		if err != nil {
			log.Errorf("Error inserting contact query: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save query"})
			return
		}
		id, _ := res.LastInsertId()

		utils.SendAdminEmail("New Kalakriti Query",
			fmt.Sprintf("You have received a new query:\n\nName: %s\nEmail: %s\nMessage: %s",
				query.FullName, query.Email, query.Message))

		utils.ResponseJSON(w, map[string]interface{}{
			"id":      id,
			"message": "Your query has been received. We will get back to you soon!",
		})
	}
}

// GetQueries lists contact queries for the admin panel, optionally
// filtered by ?status=open|resolved.
func (qc *QueryController) GetQueries(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		query := `SELECT id, full_name, email, message, status, created_at FROM queries`
		args := []interface{}{}
		if status := r.URL.Query().Get("status"); status != "" {
			query += " WHERE status = ?"
			args = append(args, status)
		}
		query += " ORDER BY id DESC"

		rows, err := db.Query(query, args...)
		if err != nil {
			log.Errorf("Error querying contact queries: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		queries := []models.Query{}
		for rows.Next() {
			var q models.Query
			if err := rows.Scan(&q.ID, &q.FullName, &q.Email, &q.Message, &q.Status, &q.CreatedAt); err != nil {
				log.Errorf("Error scanning query: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			queries = append(queries, q)
		}

		utils.ResponseJSON(w, queries)
	}
}

// ResolveQuery marks a query resolved. Admin only.
func (qc *QueryController) ResolveQuery(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		queryID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid query id"})
			return
		}

		res, err := db.Exec("UPDATE queries SET status = 'resolved' WHERE id = ?", queryID)
		if err != nil {
			log.Errorf("Error resolving query: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update query"})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Query not found"})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Query resolved."})
	}
}

func (qc *QueryController) DeleteQuery(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		queryID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid query id"})
			return
		}

		res, err := db.Exec("DELETE FROM queries WHERE id = ?", queryID)
		if err != nil {
			log.Errorf("Error deleting query: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete query"})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Query not found"})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Query deleted."})
	}
}
