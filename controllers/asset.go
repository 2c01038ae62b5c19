package controllers

import (
	"database/sql"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"kalakriti/models"
	"kalakriti/storage"
	"kalakriti/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type AssetController struct {
	Uploader storage.Uploader
}

var allowedExtensions = map[string][]string{
	"image": {".jpg", ".jpeg", ".png", ".webp"},
	"audio": {".mp3", ".wav", ".m4a"},
	"video": {".mp4", ".mov", ".webm"},
}

func extensionAllowed(mediaKind, ext string) bool {
	for _, allowed := range allowedExtensions[mediaKind] {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UploadFile stores one artwork file for a paid registration. Each file
// is recorded individually, so a failed upload leaves the earlier ones
// in place and can simply be retried. The registration becomes
// submitted when the recorded count reaches the artwork count.
func (ac *AssetController) UploadFile(db *sql.DB) http.HandlerFunc {
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
		if reg.Status == models.StatusPendingPayment {
			utils.RespondWithError(w, http.StatusConflict, models.Error{Message: "Payment must be verified before uploading files"})
			return
		}
		if reg.Status == models.StatusSubmitted || reg.FilesUploaded >= reg.ArtworkCount {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "All artwork files have already been uploaded"})
			return
		}

		event, ok := models.EventByType(reg.EventType)
		if !ok {
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Unknown event type on registration"})
			return
		}

		maxBytes := event.MaxFileSizeMB << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid form data or file too large"})
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "file field is required"})
			return
		}
		defer file.Close()

		if header.Size > maxBytes {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{
				Message: fmt.Sprintf("File exceeds the %dMB limit for %s", event.MaxFileSizeMB, reg.EventType)})
			return
		}

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !extensionAllowed(event.MediaKind, ext) {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{
				Message: fmt.Sprintf("%s submissions must be one of: %s", reg.EventType,
					strings.Join(allowedExtensions[event.MediaKind], ", "))})
			return
		}

		key := fmt.Sprintf("%s-%s%s", reg.ContestantID, uuid.NewString(), ext)
		url, err := ac.Uploader.Upload(file, key, header.Header.Get("Content-Type"))
		if err != nil {
			log.Errorf("Error uploading file: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to store file"})
			return
		}

		res, err := db.Exec(`INSERT INTO submission_files (registration_id, file_name, file_url, size_bytes)
			VALUES (?, ?, ?, ?)`, reg.ID, header.Filename, url, header.Size)
		if err != nil {
			log.Errorf("Error recording submission file: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Failed to record file"})
			return
		}
		fileID, _ := res.LastInsertId()

		uploaded := reg.FilesUploaded + 1
		status := reg.Status
		if uploaded >= reg.ArtworkCount {
			status = models.StatusSubmitted
			if _, err := db.Exec("UPDATE registrations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
				models.StatusSubmitted, reg.ID); err != nil {
				log.Errorf("Error marking registration submitted: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"file": models.SubmissionFile{
				ID:             int(fileID),
				RegistrationID: reg.ID,
				FileName:       header.Filename,
				FileURL:        url,
				SizeBytes:      header.Size,
			},
			"files_uploaded": uploaded,
			"artwork_count":  reg.ArtworkCount,
			"status":         status,
		})
	}
}

// ListFiles returns the recorded submission files for a registration.
func (ac *AssetController) ListFiles(db *sql.DB) http.HandlerFunc {
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
		if reg.UserID != userID && utils.VerifyAdmin(r) != nil {
			utils.RespondWithError(w, http.StatusForbidden, models.Error{Message: "Not your registration"})
			return
		}

		rows, err := db.Query(`SELECT id, registration_id, file_name, file_url, size_bytes, uploaded_at
			FROM submission_files WHERE registration_id = ? ORDER BY id`, reg.ID)
		if err != nil {
			log.Errorf("Error listing files: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		defer rows.Close()

		files := []models.SubmissionFile{}
		for rows.Next() {
			var f models.SubmissionFile
			if err := rows.Scan(&f.ID, &f.RegistrationID, &f.FileName, &f.FileURL, &f.SizeBytes, &f.UploadedAt); err != nil {
				log.Errorf("Error scanning file: %v", err)
				utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
				return
			}
			files = append(files, f)
		}

		utils.ResponseJSON(w, files)
	}
}
