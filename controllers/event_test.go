package controllers

import (
	"net/http"
	"testing"

	"kalakriti/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEvents(t *testing.T) {
	ec := EventController{}

	rec := doJSON(t, ec.GetEvents(), "GET", "/events", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var events []models.EventType
	decodeBody(t, rec, &events)
	assert.Len(t, events, len(models.EventCatalog))
}

func TestGetFee(t *testing.T) {
	ec := EventController{}

	rec := doJSON(t, ec.GetFee(), "GET", "/events/art/fee?artworks=2", nil, "",
		map[string]string{"type": "art"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Amount   int    `json:"amount"`
		Currency string `json:"currency"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 300, resp.Amount)
	assert.Equal(t, "INR", resp.Currency)

	rec = doJSON(t, ec.GetFee(), "GET", "/events/art/fee?artworks=0", nil, "",
		map[string]string{"type": "art"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, ec.GetFee(), "GET", "/events/art/fee", nil, "",
		map[string]string{"type": "art"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing artworks parameter")

	rec = doJSON(t, ec.GetFee(), "GET", "/events/sculpture/fee?artworks=1", nil, "",
		map[string]string{"type": "sculpture"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
