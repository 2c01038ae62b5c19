package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"kalakriti/driver"
	"kalakriti/models"
	"kalakriti/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("SECRET", "test-secret")
	os.Exit(m.Run())
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, driver.InitSchema(db, "sqlite"))
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a user directly and returns its id and a token.
func createTestUser(t *testing.T, db *sql.DB, email string) (int, string) {
	t.Helper()
	hash, err := utils.HashPassword("longenough")
	require.NoError(t, err)
	res, err := db.Exec(`INSERT INTO users (email, phone, password, first_name, role)
		VALUES (?, '9876543210', ?, 'Asha', 'user')`, email, hash)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	token, err := utils.GenerateToken(models.User{ID: int(id), Email: email, Role: "user"}, time.Hour)
	require.NoError(t, err)
	return int(id), token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(models.User{ID: 0, Role: "admin"}, time.Hour)
	require.NoError(t, err)
	return token
}

// doJSON runs a handler with a JSON body, bearer token and mux vars.
func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, token string, vars map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
