package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/umarmrv/bima-calc-api/models"
	"github.com/umarmrv/bima-calc-api/services"
)

func createQuoteFor(t *testing.T, db *gorm.DB, userID uint) *models.Quote {
	t.Helper()
	quote, err := services.NewQuoteService(db).CreateQuote(userID, models.QuoteCreateRequest{
		Tariff:           models.TariffOSAGO,
		DriverAge:        30,
		DriverExperience: 10,
		CarType:          models.CarTypeSedan,
	})
	require.NoError(t, err)
	return quote
}

func applicationBody(quoteID string) gin.H {
	return gin.H{
		"full_name": "Karim Rahimov",
		"phone":     "+992900000000",
		"email":     "karim@example.com",
		"tariff":    "OSAGO",
		"quote":     quoteID,
	}
}

func TestCreateApplicationEndpoint(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "karim")
	quote := createQuoteFor(t, db, user.ID)
	r := newAPIRouter(db, user.ID)

	w := doJSON(t, r, "POST", "/applications", applicationBody(quote.ID.String()))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, quote.ID.String(), body["quote"])
	assert.Equal(t, "NEW", body["status"])
	assert.Equal(t, "1000", body["total_amount_snapshot"])
}

func TestCreateApplicationEndpointDoubleApply(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "karim")
	quote := createQuoteFor(t, db, user.ID)
	r := newAPIRouter(db, user.ID)

	w := doJSON(t, r, "POST", "/applications", applicationBody(quote.ID.String()))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/applications", applicationBody(quote.ID.String()))
	require.Equal(t, http.StatusConflict, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "invalid quote status: USED", details["quote"])
}

func TestCreateApplicationEndpointExpiredQuote(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "karim")
	quote := createQuoteFor(t, db, user.ID)
	require.NoError(t, db.Model(&models.Quote{}).Where("id = ?", quote.ID).
		Update("valid_until", time.Now().Add(-time.Minute)).Error)
	r := newAPIRouter(db, user.ID)

	w := doJSON(t, r, "POST", "/applications", applicationBody(quote.ID.String()))
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "quote expired", details["quote"])
}

func TestCreateApplicationEndpointForeignQuote(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "karim")
	stranger := createTestUser(t, db, "farrukh")
	quote := createQuoteFor(t, db, owner.ID)

	w := doJSON(t, newAPIRouter(db, stranger.ID), "POST", "/applications", applicationBody(quote.ID.String()))
	require.Equal(t, http.StatusForbidden, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "quote belongs to another user", details["quote"])
}

func TestCreateApplicationEndpointBadQuoteID(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "karim")
	r := newAPIRouter(db, user.ID)

	w := doJSON(t, r, "POST", "/applications", applicationBody("not-a-uuid"))
	require.Equal(t, http.StatusBadRequest, w.Code)

	details := errorDetails(t, w)
	assert.Equal(t, "must be a valid quote id", details["quote"])
}

func TestGetAndListApplicationEndpoints(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "karim")
	quote := createQuoteFor(t, db, user.ID)
	r := newAPIRouter(db, user.ID)

	w := doJSON(t, r, "POST", "/applications", applicationBody(quote.ID.String()))
	require.Equal(t, http.StatusCreated, w.Code)
	appID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, r, "GET", "/applications/"+appID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", "/applications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), appID)

	// чужие заявки не видны
	stranger := createTestUser(t, db, "farrukh")
	w = doJSON(t, newAPIRouter(db, stranger.ID), "GET", "/applications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
