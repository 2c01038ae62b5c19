package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"kalakriti/models"
	"kalakriti/payments"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type PaymentController struct {
	Provider payments.Provider
}

// CreateOrder opens a gateway order for the registration's stored
// amount. Calling it again while the order is still open returns the
// same order instead of creating a second one.
func (pc *PaymentController) CreateOrder(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := utils.VerifyToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

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
		if reg.UserID != userID {
			utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Not your registration"})
			return
		}
		if reg.Status != models.StatusPendingPayment {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Registration is already " + reg.Status})
			return
		}

		orderID := reg.OrderID
		if orderID == "" {
			orderID, err = pc.Provider.CreateOrder(r.Context(), reg.ContestantID, int64(reg.Amount)*100, "INR")
			if err != nil {
				log.Errorf("Error creating payment order: %v", err)
				utils.RespondWithError(w, http.StatusBadGateway, models.Error{Message: "Failed to create payment order"})
				return
			}
			if _, err := db.Exec("UPDATE registrations SET order_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", orderID, reg.ID); err != nil {
				log.Errorf("Error saving order id: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"order_id": orderID,
			"amount":   reg.Amount * 100,
			"currency": "INR",
			"key_id":   os.Getenv("RAZORPAY_KEY_ID"),
			"provider": pc.Provider.Name(),
		})
	}
}

// VerifyPayment checks the gateway callback signature and moves the
// registration to paid. A repeated verify on an already-paid
// registration is a no-op success.
func (pc *PaymentController) VerifyPayment(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := utils.VerifyToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		regID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid registration id"})
			return
		}

		var req struct {
			OrderID   string `json:"order_id"`
			PaymentID string `json:"payment_id"`
			Signature string `json:"signature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
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
		if reg.UserID != userID {
			utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Not your registration"})
			return
		}

		if reg.Status == models.StatusPaid || reg.Status == models.StatusSubmitted {
			utils.ResponseJSON(w, map[string]string{"message": "Payment already verified.", "status": reg.Status})
			return
		}

		if reg.OrderID == "" || req.OrderID != reg.OrderID {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Order id does not match this registration"})
			return
		}
		if !pc.Provider.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Payment signature verification failed"})
			return
		}

		_, err = db.Exec(`UPDATE registrations SET status = ?, payment_id = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ? AND status = ?`,
			models.StatusPaid, req.PaymentID, reg.ID, models.StatusPendingPayment)
		if err != nil {
			log.Errorf("Error updating payment status: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Payment verified.", "status": models.StatusPaid})
	}
}
