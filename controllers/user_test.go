package controllers

import (
	"net/http"
	"testing"

	"kalakriti/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(mutate func(map[string]interface{})) map[string]interface{} {
	body := map[string]interface{}{
		"email":            "asha@example.org",
		"phone":            "9876543210",
		"password":         "longenough",
		"confirm_password": "longenough",
		"first_name":       "Asha",
		"last_name":        "Verma",
		"address":          "12 MG Road",
	}
	if mutate != nil {
		mutate(body)
	}
	return body
}

func TestSignupSuccess(t *testing.T) {
	db := testDB(t)
	c := Controller{}

	rec := doJSON(t, c.Signup(db), "POST", "/signup", signupBody(nil), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.NotZero(t, resp.User.ID)
	assert.Empty(t, resp.User.Password, "password must not echo back")
}

func TestSignupRejectsBadEmail(t *testing.T) {
	db := testDB(t)
	c := Controller{}

	for _, email := range []string{"", "plain", "a@b", "a b@c.d"} {
		rec := doJSON(t, c.Signup(db), "POST", "/signup",
			signupBody(func(b map[string]interface{}) { b["email"] = email }), "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "email %q", email)
	}
}

func TestSignupRejectsBadPhone(t *testing.T) {
	db := testDB(t)
	c := Controller{}

	for _, phone := range []string{"", "12345", "98765432101", "98765abc10"} {
		rec := doJSON(t, c.Signup(db), "POST", "/signup",
			signupBody(func(b map[string]interface{}) { b["phone"] = phone }), "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "phone %q", phone)
	}
}

func TestSignupRejectsWeakOrMismatchedPassword(t *testing.T) {
	db := testDB(t)
	c := Controller{}

	rec := doJSON(t, c.Signup(db), "POST", "/signup",
		signupBody(func(b map[string]interface{}) {
			b["password"] = "short"
			b["confirm_password"] = "short"
		}), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, c.Signup(db), "POST", "/signup",
		signupBody(func(b map[string]interface{}) { b["confirm_password"] = "different1" }), "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := testDB(t)
	c := Controller{}

	rec := doJSON(t, c.Signup(db), "POST", "/signup", signupBody(nil), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, c.Signup(db), "POST", "/signup", signupBody(nil), "", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	db := testDB(t)
	c := Controller{}
	createTestUser(t, db, "asha@example.org")

	rec := doJSON(t, c.Login(db), "POST", "/login",
		map[string]string{"email": "asha@example.org", "password": "longenough"}, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)

	rec = doJSON(t, c.Login(db), "POST", "/login",
		map[string]string{"email": "asha@example.org", "password": "wrongpass1"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, c.Login(db), "POST", "/login",
		map[string]string{"email": "nobody@example.org", "password": "longenough"}, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMe(t *testing.T) {
	db := testDB(t)
	c := Controller{}
	_, token := createTestUser(t, db, "asha@example.org")

	rec := doJSON(t, c.GetMe(db), "GET", "/getMe", nil, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "asha@example.org", user.Email)

	rec = doJSON(t, c.GetMe(db), "GET", "/getMe", nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
