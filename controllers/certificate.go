package controllers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	"github.com/jung-kurt/gofpdf"
	log "github.com/sirupsen/logrus"
)

// Certificate renders the fixed-layout achievement certificate for one
// result entry and streams it as a PDF download.
func (rc *ResultController) Certificate(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entryID, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "Invalid entry id"})
			return
		}

		var e models.ResultEntry
		var remarks sql.NullString
		err = db.QueryRow(`SELECT e.id, e.contestant_id, e.participant_name, e.category, e.position,
			e.score, e.remarks, s.event_type, s.season
			FROM result_entries e
			JOIN result_sets s ON e.result_set_id = s.id
			WHERE e.id = ?`, entryID).Scan(&e.ID, &e.ContestantID, &e.ParticipantName,
			&e.Category, &e.Position, &e.Score, &remarks, &e.EventType, &e.Season)
		if err == sql.ErrNoRows {
			utils.RespondWithError(w, http.StatusNotFound, models.Error{Message: "Result entry not found"})
			return
		} else if err != nil {
			log.Errorf("Error loading result entry: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, models.Error{Message: "Server error."})
			return
		}
		if remarks.Valid {
			e.Remarks = remarks.String
		}

		pdf := buildCertificate(e)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="certificate-%s.pdf"`, e.ContestantID))
		if err := pdf.Output(w); err != nil {
			log.Errorf("Error writing certificate PDF: %v", err)
		}
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func buildCertificate(e models.ResultEntry) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	// Double border frame.
	pdf.SetLineWidth(1.2)
	pdf.SetDrawColor(153, 101, 21)
	pdf.Rect(8, 8, pageW-16, pageH-16, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(12, 12, pageW-24, pageH-24, "D")

	pdf.SetY(30)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(120, 60, 12)
	pdf.CellFormat(0, 14, "KALAKRITI", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 10, "Certificate of Achievement", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 13)
	pdf.CellFormat(0, 8, "This certificate is proudly presented to", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 14, e.ParticipantName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 8, "Contestant ID: "+e.ContestantID, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	placement := fmt.Sprintf("for securing position %d", e.Position)
	if e.Category == models.CategoryTop100 {
		placement = fmt.Sprintf("for ranking #%d in the Top 100", e.Position)
	}
	body := fmt.Sprintf("%s in the %s competition, %s (%s category) with a score of %.1f.",
		placement, titleCase(e.EventType), e.Season, e.Category, e.Score)
	pdf.SetFont("Helvetica", "", 13)
	pdf.SetTextColor(60, 60, 60)
	pdf.MultiCell(0, 8, body, "", "C", false)

	if e.Remarks != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, `"`+e.Remarks+`"`, "", 1, "C", false, 0, "")
	}

	pdf.SetY(pageH - 40)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, "Kalakriti Organising Committee", "", 1, "C", false, 0, "")

	return pdf
}
