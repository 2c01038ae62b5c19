package controllers

import (
	"database/sql"
	"net/http"
	"strconv"
	"testing"

	"kalakriti/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedResultSet(t *testing.T, db *sql.DB, eventType, season string, latest bool, entries []models.ResultEntry) int {
	t.Helper()
	res, err := db.Exec(`INSERT INTO result_sets (event_type, season, is_latest) VALUES (?, ?, ?)`,
		eventType, season, latest)
	require.NoError(t, err)
	setID, err := res.LastInsertId()
	require.NoError(t, err)

	for _, e := range entries {
		_, err := db.Exec(`INSERT INTO result_entries
			(result_set_id, contestant_id, participant_name, category, position, score, remarks)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			setID, e.ContestantID, e.ParticipantName, e.Category, e.Position, e.Score, e.Remarks)
		require.NoError(t, err)
	}
	return int(setID)
}

func sampleEntries() []models.ResultEntry {
	return []models.ResultEntry{
		{ContestantID: "KK25-ART-000002", ParticipantName: "Ravi Kumar", Category: models.CategoryAdult, Position: 2, Score: 88.0},
		{ContestantID: "KK25-ART-000001", ParticipantName: "Asha Verma", Category: models.CategoryAdult, Position: 1, Score: 95.5, Remarks: "Excellent brushwork"},
		{ContestantID: "KK25-ART-000003", ParticipantName: "Meera Iyer", Category: models.CategoryChildren, Position: 1, Score: 91.0},
		{ContestantID: "KK25-ART-000004", ParticipantName: "Kabir Shah", Category: models.CategoryPreschool, Position: 1, Score: 89.0},
		{ContestantID: "KK25-ART-000005", ParticipantName: "Divya Nair", Category: models.CategoryTop100, Position: 7, Score: 82.5},
		{ContestantID: "KK25-ART-000001", ParticipantName: "Asha Verma", Category: models.CategoryTop100, Position: 1, Score: 95.5},
	}
}

func TestGetSeasonsDeduplicates(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}

	seedResultSet(t, db, "art", "Season 2024", false, nil)
	seedResultSet(t, db, "art", "Season 2025", true, nil)
	seedResultSet(t, db, "art", "Season 2025", false, nil)
	seedResultSet(t, db, "dance", "Season 2025", true, nil)

	rec := doJSON(t, rc.GetSeasons(db), "GET", "/results/seasons?event=art", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var seasons []string
	decodeBody(t, rec, &seasons)
	assert.Equal(t, []string{"Season 2024", "Season 2025"}, seasons)
}

func TestGetResultsLeaderboards(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}
	seedResultSet(t, db, "art", "Season 2025", true, sampleEntries())

	rec := doJSON(t, rc.GetResults(db), "GET", "/results?event=art&season=Season+2025", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var board models.Leaderboards
	decodeBody(t, rec, &board)

	require.Len(t, board.Adult, 2)
	assert.Equal(t, 1, board.Adult[0].Position, "adult list ordered by stored position")
	assert.Equal(t, "Asha Verma", board.Adult[0].ParticipantName)
	require.Len(t, board.Children, 1)
	require.Len(t, board.Preschool, 1)
	require.Len(t, board.Top100, 2)
	assert.Equal(t, 1, board.Top100[0].Position)
}

func TestGetResultsIsIdempotent(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}
	seedResultSet(t, db, "art", "Season 2025", true, sampleEntries())

	first := doJSON(t, rc.GetResults(db), "GET", "/results?event=art&season=Season+2025", nil, "", nil)
	second := doJSON(t, rc.GetResults(db), "GET", "/results?event=art&season=Season+2025", nil, "", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String(),
		"same stored results and selection must render identically")
}

func TestGetResultsDefaultsToLatestSet(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}
	seedResultSet(t, db, "art", "Season 2024", false, nil)
	seedResultSet(t, db, "art", "Season 2025", true, sampleEntries())

	rec := doJSON(t, rc.GetResults(db), "GET", "/results?event=art", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var board models.Leaderboards
	decodeBody(t, rec, &board)
	assert.Equal(t, "Season 2025", board.Season)
}

func TestGetResultsNoneFound(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}

	rec := doJSON(t, rc.GetResults(db), "GET", "/results?event=art", nil, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResultEntryRoundTrip(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}

	original := models.ResultEntry{
		ContestantID:    "KK25-ART-000042",
		ParticipantName: "Nandini Rao",
		Category:        models.CategoryAdult,
		Position:        3,
		Score:           87.25,
		Remarks:         "Bold composition",
	}
	seedResultSet(t, db, "art", "Season 2025", true, []models.ResultEntry{original})

	rec := doJSON(t, rc.GetResults(db), "GET", "/results?event=art&season=Season+2025", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var board models.Leaderboards
	decodeBody(t, rec, &board)
	require.Len(t, board.Adult, 1)
	got := board.Adult[0]

	assert.Equal(t, original.ContestantID, got.ContestantID)
	assert.Equal(t, original.ParticipantName, got.ParticipantName)
	assert.Equal(t, original.Category, got.Category)
	assert.Equal(t, original.Position, got.Position)
	assert.Equal(t, original.Score, got.Score)
	assert.Equal(t, original.Remarks, got.Remarks)
}

func TestSearchResults(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}
	seedResultSet(t, db, "art", "Season 2025", true, sampleEntries())
	seedResultSet(t, db, "dance", "Season 2025", true, []models.ResultEntry{
		{ContestantID: "KK25-DANCE-000009", ParticipantName: "Asha Verma", Category: models.CategoryAdult, Position: 4, Score: 78.0},
	})

	rec := doJSON(t, rc.SearchResults(db), "GET", "/results/search?q=Asha", nil, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []models.ResultEntry
	decodeBody(t, rec, &entries)
	assert.Len(t, entries, 3, "matches span every stored result set")

	rec = doJSON(t, rc.SearchResults(db), "GET", "/results/search?q=KK25-DANCE", nil, "", nil)
	decodeBody(t, rec, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "dance", entries[0].EventType)

	rec = doJSON(t, rc.SearchResults(db), "GET", "/results/search?q=", nil, "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCertificateDownload(t *testing.T) {
	db := testDB(t)
	rc := ResultController{}
	seedResultSet(t, db, "art", "Season 2025", true, sampleEntries())

	var entryID int
	require.NoError(t, db.QueryRow(`SELECT id FROM result_entries WHERE contestant_id = 'KK25-ART-000001' AND category = 'adult'`).Scan(&entryID))

	rec := doJSON(t, rc.Certificate(db), "GET", "/results/entries/1/certificate", nil, "",
		map[string]string{"id": strconv.Itoa(entryID)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, len(rec.Body.Bytes()) > 500, "PDF should have real content")
	assert.Equal(t, "%PDF", string(rec.Body.Bytes()[:4]))

	rec = doJSON(t, rc.Certificate(db), "GET", "/results/entries/999/certificate", nil, "",
		map[string]string{"id": "999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
