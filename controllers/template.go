package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"kalakriti/models"
	"kalakriti/utils"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ResultsTemplate serves the bulk-upload template as XLSX or CSV, with
// the header row and one sample entry.
func (ac *AdminController) ResultsTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := utils.VerifyAdmin(r); err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, models.Error{Message: err.Error()})
			return
		}

		sample := []string{"KK25-ART-000001", "Asha Verma", models.CategoryAdult, "1", "95.5", "Excellent brushwork"}

		switch format := r.URL.Query().Get("format"); format {
		case "csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="results-template.csv"`)
			writer := csv.NewWriter(w)
			_ = writer.Write(resultColumns)
			_ = writer.Write(sample)
			writer.Flush()
			if err := writer.Error(); err != nil {
				log.Errorf("Error writing csv template: %v", err)
			}
		case "", "xlsx":
			f := excelize.NewFile()
			defer f.Close()
			sheet := f.GetSheetName(0)
			for i, col := range resultColumns {
				cell, _ := excelize.CoordinatesToCellName(i+1, 1)
				_ = f.SetCellValue(sheet, cell, col)
			}
			for i, val := range sample {
				cell, _ := excelize.CoordinatesToCellName(i+1, 2)
				_ = f.SetCellValue(sheet, cell, val)
			}

			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="results-template.xlsx"`)
			if err := f.Write(w); err != nil {
				log.Errorf("Error writing xlsx template: %v", err)
			}
		default:
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{
				Message: fmt.Sprintf("Unknown format %q, expected xlsx or csv", format)})
		}
	}
}
