package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/umarmrv/bima-calc-api/config"
	"github.com/umarmrv/bima-calc-api/models"
	"github.com/umarmrv/bima-calc-api/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quote{}, &models.Application{}))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "x", Role: "user"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// stubAuth подменяет JWT middleware в тестах хендлеров
func stubAuth(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", int(userID))
		c.Next()
	}
}

// newAPIRouter собирает роутер с quote/application маршрутами от имени userID
func newAPIRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	qc := NewQuoteController(services.NewQuoteService(db))
	ac := NewApplicationController(services.NewApplicationService(db))

	auth := r.Group("", stubAuth(userID))
	{
		auth.POST("/quotes", qc.CreateQuote)
		auth.GET("/quotes", qc.ListQuotes)
		auth.GET("/quotes/:id", qc.GetQuote)
		auth.POST("/applications", ac.CreateApplication)
		auth.GET("/applications", ac.ListApplications)
		auth.GET("/applications/:id", ac.GetApplication)
	}
	return r
}

// newAuthRouter собирает роутер с публичными auth-маршрутами
func newAuthRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	uc := NewUserController(db, nil, cfg)

	r := gin.New()
	r.POST("/register", uc.Register)
	r.POST("/login", uc.Login)
	r.POST("/refresh", uc.Refresh)
	r.POST("/logout", uc.Logout)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// errorDetails достаёт details из единого тела ошибки
func errorDetails(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "response must carry error envelope: %s", w.Body.String())
	details, ok := errObj["details"].(map[string]interface{})
	require.True(t, ok, "error envelope must carry details")
	return details
}
