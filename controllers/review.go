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

// CreateReview accepts a public testimonial. New reviews start in
// pending and only show publicly after moderation.
func (rc *ReviewController) CreateReview(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var review models.Review
		if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}

		if review.ReviewerName == "" || review.Comment == "" {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Reviewer name and comment are required"})
			return
		}
		if review.Rating < 1 || review.Rating > 5 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Rating must be between 1 and 5"})
			return
		}

		res, err := db.Exec(`INSERT INTO reviews (reviewer_name, reviewer_role, rating, comment, status)
			VALUES (?, ?, ?, ?, ?)`,
			review.ReviewerName, review.ReviewerRole, review.Rating, review.Comment, models.ReviewPending)
		if err != nil {
			log.Errorf("Error inserting review: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to save review"})
			return
		}

		id, _ := res.LastInsertId()
		review.ID = int(id)
		review.Status = models.ReviewPending
		utils.ResponseJSON(w, review)
	}
}

// GetReviews lists approved reviews. With an admin token the full
// moderation queue is visible and can be filtered by ?status=.
func (rc *ReviewController) GetReviews(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := models.ReviewApproved
		if utils.VerifyAdmin(r) == nil {
			status = r.URL.Query().Get("status")
		}

		query := `SELECT id, reviewer_name, reviewer_role, rating, comment, status, created_at FROM reviews`
		args := []interface{}{}
		if status != "" {
			query += " WHERE status = ?"
			args = append(args, status)
		}
		query += " ORDER BY id DESC"

		rows, err := db.Query(query, args...)
		if err != nil {
			log.Errorf("Error querying reviews: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		reviews := []models.Review{}
		for rows.Next() {
			var rv models.Review
			if err := rows.Scan(&rv.ID, &rv.ReviewerName, &rv.ReviewerRole, &rv.Rating,
				&rv.Comment, &rv.Status, &rv.CreatedAt); err != nil {
				log.Errorf("Error scanning review: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			reviews = append(reviews, rv)
		}

		utils.ResponseJSON(w, reviews)
	}
}

// ModerateReview approves or rejects a pending review. Admin only.
func (rc *ReviewController) ModerateReview(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		reviewID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid review id"})
			return
		}

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if req.Status != models.ReviewApproved && req.Status != models.ReviewRejected {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Status must be approved or rejected"})
			return
		}

		res, err := db.Exec("UPDATE reviews SET status = ? WHERE id = ?", req.Status, reviewID)
		if err != nil {
			log.Errorf("Error updating review: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update review"})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Review not found"})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Review " + req.Status + "."})
	}
}

func (rc *ReviewController) DeleteReview(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		reviewID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid review id"})
			return
		}

		res, err := db.Exec("DELETE FROM reviews WHERE id = ?", reviewID)
		if err != nil {
			log.Errorf("Error deleting review: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to delete review"})
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Review not found"})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Review deleted."})
	}
}
