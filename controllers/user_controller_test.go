package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{
		"username": "karim",
		"email":    "karim@example.com",
		"password": "p4ssword-ok",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "karim", body["username"])
	assert.Equal(t, "karim@example.com", body["email"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["access"])
	assert.NotEmpty(t, body["refresh"])
}

func TestRegisterEndpointDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{"username": "karim", "password": "p4ssword-ok"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/register", gin.H{"username": "karim", "password": "p4ssword-ok"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "a user with that username already exists", details["username"])
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{
		"username": "karim", "email": "karim@example.com", "password": "p4ssword-ok",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/register", gin.H{
		"username": "farrukh", "email": "karim@example.com", "password": "p4ssword-ok",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "a user with that email already exists", details["email"])
}

func TestRegisterEndpointWeakPassword(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{"username": "karim", "password": "12345678"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "must not be entirely numeric", details["password"])
}

func TestRegisterEndpointEmailOptional(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{"username": "karim", "password": "p4ssword-ok"})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "", body["email"])
}

func TestLoginEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	doJSON(t, r, "POST", "/register", gin.H{"username": "karim", "password": "p4ssword-ok"})

	w := doJSON(t, r, "POST", "/login", gin.H{"username": "karim", "password": "p4ssword-ok"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["access"])
	assert.NotEmpty(t, body["refresh"])

	w = doJSON(t, r, "POST", "/login", gin.H{"username": "karim", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/login", gin.H{"username": "ghost", "password": "p4ssword-ok"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{"username": "karim", "password": "p4ssword-ok"})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	refresh := body["refresh"].(string)
	access := body["access"].(string)

	w = doJSON(t, r, "POST", "/refresh", gin.H{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["access"])

	// access-токен не годится для обновления
	w = doJSON(t, r, "POST", "/refresh", gin.H{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/refresh", gin.H{"refresh": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
