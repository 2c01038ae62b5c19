package controllers

import (
	"net/http"
	"strconv"

	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
)

type EventController struct{}

func (ec *EventController) GetEvents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseJSON(w, models.EventCatalog)
	}
}

// GetFee quotes the registration fee for an event type and artwork
// count. The same computation runs again at registration time; the quote
// is informational only.
func (ec *EventController) GetFee() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventType := mux.Vars(r)["type"]

		artworks, err := strconv.Atoi(r.URL.Query().Get("artworks"))
		if err != nil || artworks <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: "artworks query parameter must be a positive number"})
			return
		}

		fee, err := models.Fee(eventType, artworks)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, models.Error{Message: err.Error()})
			return
		}

		utils.ResponseJSON(w, map[string]interface{}{
			"event_type": eventType,
			"artworks":   artworks,
			"amount":     fee,
			"currency":   "INR",
		})
	}
}
