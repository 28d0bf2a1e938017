package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/umarmrv/bima-calc-api/config"
	"github.com/umarmrv/bima-calc-api/models"
	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	RDB *redis.Client
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *UserController {
	return &UserController{DB: db, RDB: rdb, Cfg: cfg}
}

// POST /register
func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorMessage(c, http.StatusBadRequest, "invalid request")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	fields := map[string]string{}
	if req.Username == "" {
		fields["username"] = "required"
	}
	if msg := utils.ValidatePassword(req.Password); msg != "" {
		fields["password"] = msg
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		fields["email"] = "must be a valid email address"
	}

	// Дубликаты проверяем вместе с остальными полями, чтобы отдать всё сразу
	if req.Username != "" {
		var count int64
		uc.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
		if count > 0 {
			fields["username"] = "a user with that username already exists"
		}
	}
	if req.Email != "" && fields["email"] == "" {
		var count int64
		uc.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			fields["email"] = "a user with that email already exists"
		}
	}
	if len(fields) > 0 {
		utils.ErrorJSON(c, http.StatusBadRequest, fields)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.LogError(err, "hash password")
		utils.ErrorMessage(c, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &models.User{
		Username: req.Username,
		Password: hash,
		Role:     "user",
	}
	if req.Email != "" {
		email := req.Email
		user.Email = &email
	}
	if err := uc.DB.Create(user).Error; err != nil {
		utils.LogError(err, "create user")
		utils.ErrorMessage(c, http.StatusInternalServerError, "internal server error")
		return
	}

	access, refresh, ok := uc.issueTokenPair(c, user)
	if !ok {
		return
	}

	log.Printf("[REGISTER] user_id=%d username=%s", user.ID, user.Username)
	c.JSON(http.StatusCreated, models.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    req.Email,
		Access:   access,
		Refresh:  refresh,
	})
}

// POST /login
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorMessage(c, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.ErrorJSON(c, http.StatusBadRequest, map[string]string{"username": "required", "password": "required"})
		return
	}

	var user models.User
	if err := uc.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.ErrorMessage(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		utils.ErrorMessage(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, refresh, ok := uc.issueTokenPair(c, &user)
	if !ok {
		return
	}

	log.Printf("[LOGIN] user_id=%d username=%s", user.ID, user.Username)
	c.JSON(http.StatusOK, models.TokenPairResponse{Access: access, Refresh: refresh})
}

// POST /refresh
func (uc *UserController) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		utils.ErrorMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	claims, err := utils.ParseJWT(req.Refresh, uc.Cfg.JWTSecret)
	if err != nil {
		utils.ErrorMessage(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if utils.TokenType(claims) != utils.TokenTypeRefresh {
		utils.ErrorMessage(c, http.StatusUnauthorized, "refresh token required")
		return
	}
	if uc.RDB != nil {
		if _, err := uc.RDB.Get(utils.RedisCtx(), "blacklist:"+req.Refresh).Result(); err == nil {
			utils.ErrorMessage(c, http.StatusUnauthorized, "token has been revoked")
			return
		}
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		utils.ErrorMessage(c, http.StatusUnauthorized, "invalid token payload")
		return
	}

	var user models.User
	if err := uc.DB.First(&user, uint(userID)).Error; err != nil {
		utils.ErrorMessage(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	access, refresh, issued := uc.issueTokenPair(c, &user)
	if !issued {
		return
	}
	c.JSON(http.StatusOK, models.TokenPairResponse{Access: access, Refresh: refresh})
}

// POST /logout — заносит предъявленный access-токен в черный список
// до момента его истечения
func (uc *UserController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		utils.ErrorMessage(c, http.StatusUnauthorized, "missing or invalid Authorization header")
		return
	}

	claims, err := utils.ParseJWT(token, uc.Cfg.JWTSecret)
	if err != nil {
		utils.ErrorMessage(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	ttl := uc.Cfg.AccessTokenTTL
	if exp, ok := claims["exp"].(float64); ok {
		if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
			ttl = until
		}
	}
	if uc.RDB != nil {
		uc.RDB.Set(utils.RedisCtx(), "blacklist:"+token, "1", ttl)
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// issueTokenPair выпускает пару access/refresh; при ошибке сам отвечает 500
func (uc *UserController) issueTokenPair(c *gin.Context, user *models.User) (string, string, bool) {
	access, err := utils.GenerateAccessToken(user.ID, user.Role, uc.Cfg.JWTSecret, uc.Cfg.AccessTokenTTL)
	if err != nil {
		utils.LogError(err, "generate access token")
		utils.ErrorMessage(c, http.StatusInternalServerError, "internal server error")
		return "", "", false
	}
	refresh, _, err := utils.GenerateRefreshToken(user.ID, uc.Cfg.JWTSecret, uc.Cfg.RefreshTokenTTL)
	if err != nil {
		utils.LogError(err, "generate refresh token")
		utils.ErrorMessage(c, http.StatusInternalServerError, "internal server error")
		return "", "", false
	}
	return access, refresh, true
}
