package controllers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"kalakriti/models"
	"kalakriti/utils"

	log "github.com/sirupsen/logrus"
)

func (c Controller) Signup(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		var error models.Error

		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			error.Message = "Invalid request body."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}

		user.Role = "user"

		if user.FirstName == "" {
			error.Message = "First name is required."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}
		if !utils.IsEmail(user.Email) {
			error.Message = "Invalid email format."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}
		if !utils.IsPhoneNumber(user.Phone) {
			error.Message = "Phone number must be exactly 10 digits."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}
		if !utils.ValidPassword(user.Password, user.ConfirmPassword) {
			error.Message = "Password must be at least 8 characters and match the confirmation."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}

		var existingID int
		err := db.QueryRow("SELECT id FROM users WHERE email = ?", user.Email).Scan(&existingID)
		if err == nil {
			error.Message = "Email already exists."
			utils.RespondWithError(w, http.StatusConflict, error)
			return
		} else if err != sql.ErrNoRows {
			log.Errorf("Error checking existing user: %v", err)
			error.Message = "Server error."
			utils.RespondWithError(w, http.StatusInternalServerError, error)
			return
		}

		hash, err := utils.HashPassword(user.Password)
		if err != nil {
			log.Errorf("Error hashing password: %v", err)
			error.Message = "Server error."
			utils.RespondWithError(w, http.StatusInternalServerError, error)
			return
		}

		res, err := db.Exec(`INSERT INTO users (email, phone, password, first_name, last_name, address, age, previous_experience, role)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user.Email, user.Phone, hash, user.FirstName, user.LastName, user.Address, user.Age, user.PreviousExperience, user.Role)
		if err != nil {
			log.Errorf("Error inserting user: %v", err)
			error.Message = "Server error."
			utils.RespondWithError(w, http.StatusInternalServerError, error)
			return
		}

		id, _ := res.LastInsertId()
		user.ID = int(id)
		user.Password = ""
		user.ConfirmPassword = ""

		token, err := utils.GenerateToken(user, 24*time.Hour)
		if err != nil {
			log.Errorf("Error generating token: %v", err)
			error.Message = "Server error."
			utils.RespondWithError(w, http.StatusInternalServerError, error)
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"message": "User registered successfully.",
			"token":   token,
			"user":    user,
		})
	}
}

func (c Controller) Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds models.User
		var error models.Error

		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			error.Message = "Invalid request body."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}
		if creds.Email == "" || creds.Password == "" {
			error.Message = "Email and password are required."
			utils.RespondWithError(w, http.StatusBadRequest, error)
			return
		}

		var user models.User
		var hashedPassword string
		err := db.QueryRow(`SELECT id, email, phone, password, first_name, last_name, address, age, role FROM users WHERE email = ?`,
			creds.Email).Scan(&user.ID, &user.Email, &user.Phone, &hashedPassword,
			&user.FirstName, &user.LastName, &user.Address, &user.Age, &user.Role)
		if err == sql.ErrNoRows {
			error.Message = "Invalid email or password."
			utils.RespondWithError(w, http.StatusUnauthorized, error)
			return
		} else if err != nil {
			log.Errorf("Error querying user: %v", err)
			error.Message = "Server error."
			utils.RespondWithError(w, http.StatusInternalServerError, error)
			return
		}

		if !utils.ComparePasswords(hashedPassword, []byte(creds.Password)) {
			error.Message = "Invalid email or password."
			utils.RespondWithError(w, http.StatusUnauthorized, error)
			return
		}

		token, err := utils.GenerateToken(user, 24*time.Hour)
		if err != nil {
			log.Errorf("Error generating token: %v", err)
			error.Message = "Server error."
			utils.RespondWithError(w, http.StatusInternalServerError, error)
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"token": token,
			"user":  user,
		})
	}
}

func (c Controller) GetMe(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := utils.VerifyToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		var user models.User
		var prevExp sql.NullString
		err = db.QueryRow(`SELECT id, email, phone, first_name, last_name, address, age, previous_experience, role, created_at
			FROM users WHERE id = ?`, userID).Scan(&user.ID, &user.Email, &user.Phone,
			&user.FirstName, &user.LastName, &user.Address, &user.Age, &prevExp, &user.Role, &user.CreatedAt)
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "User not found"})
			return
		} else if err != nil {
			log.Errorf("Error querying user: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		if prevExp.Valid {
			user.PreviousExperience = prevExp.String
		}

		utils.ResponseJSON(w, user)
	}
}

func (c Controller) UpdateProfile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := utils.VerifyToken(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		var user models.User
		if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid request body"})
			return
		}
		if user.Phone != "" && !utils.IsPhoneNumber(user.Phone) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Phone number must be exactly 10 digits."})
			return
		}

		_, err = db.Exec(`UPDATE users SET
			first_name = CASE WHEN ? != '' THEN ? ELSE first_name END,
			last_name = CASE WHEN ? != '' THEN ? ELSE last_name END,
			phone = CASE WHEN ? != '' THEN ? ELSE phone END,
			address = CASE WHEN ? != '' THEN ? ELSE address END,
			age = CASE WHEN ? > 0 THEN ? ELSE age END,
			previous_experience = CASE WHEN ? != '' THEN ? ELSE previous_experience END
			WHERE id = ?`,
			user.FirstName, user.FirstName,
			user.LastName, user.LastName,
			user.Phone, user.Phone,
			user.Address, user.Address,
			user.Age, user.Age,
			user.PreviousExperience, user.PreviousExperience,
			userID)
		if err != nil {
			log.Errorf("Error updating profile: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to update profile"})
			return
		}

		utils.ResponseJSON(w, map[string]string{"message": "Profile updated successfully."})
	}
}
