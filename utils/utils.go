package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"kalakriti/models"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func RespondWithError(w http.ResponseWriter, status int, error models.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(error); err != nil {
		log.Errorf("Error encoding error response: %v", err)
	}
}

func ResponseJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode JSON", http.StatusInternalServerError)
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func ComparePasswords(hashedPassword string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), password)
	if err != nil {
		return false
	}
	return true
}

// GenerateToken signs an HS256 JWT for the given user. Admin tokens use
// user ID 0 and role "admin".
func GenerateToken(user models.User, expiration time.Duration) (string, error) {
	secret := os.Getenv("SECRET")
	if secret == "" {
		return "", errors.New("SECRET environment variable is not set")
	}

	claims := jwt.MapClaims{
		"iss":     "kalakriti",
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(expiration).Unix(),
		"iat":     time.Now().Unix(),
	}
	if user.Email != "" {
		claims["email"] = user.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseBearer(r *http.Request) (jwt.MapClaims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.New("Authorization header missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("Invalid Authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("Invalid token claims")
	}
	return claims, nil
}

// VerifyToken checks the bearer token and returns the authenticated user ID.
func VerifyToken(r *http.Request) (int, error) {
	claims, err := parseBearer(r)
	if err != nil {
		return 0, err
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("user_id not found in token")
	}
	return int(userIDFloat), nil
}

// VerifyAdmin checks the bearer token and requires the admin role.
func VerifyAdmin(r *http.Request) error {
	claims, err := parseBearer(r)
	if err != nil {
		return err
	}
	role, _ := claims["role"].(string)
	if role != "admin" {
		return errors.New("admin access required")
	}
	return nil
}

// ContestantID formats the public contestant identifier from the
// registration row id, e.g. KK25-ART-000042. Row ids make it unique by
// construction, unlike the old client-generated random strings.
func ContestantID(registrationID int64, eventType string) string {
	return fmt.Sprintf("KK%s-%s-%06d",
		time.Now().Format("06"),
		strings.ToUpper(eventType),
		registrationID)
}
