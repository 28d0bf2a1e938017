package routes

import (
	"github.com/umarmrv/bima-calc-api/config"
	"github.com/umarmrv/bima-calc-api/controllers"
	"github.com/umarmrv/bima-calc-api/middleware"
	"github.com/umarmrv/bima-calc-api/services"
	"github.com/umarmrv/bima-calc-api/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter создаёт gin.Engine, регистрирует все маршруты и возвращает роутер
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), middleware.RecoveryMiddleware())

	// CORS middleware ДО роутов
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	db := utils.GetDB()
	userController := controllers.NewUserController(db, utils.GetRedis(), cfg)
	quoteController := controllers.NewQuoteController(services.NewQuoteService(db))
	applicationController := controllers.NewApplicationController(services.NewApplicationService(db))

	// Анонимные маршруты лимитируются по IP
	anonLimit := middleware.RateLimitMiddleware(cfg.RateLimitIP, cfg.RateLimitWindow)
	r.POST("/register", anonLimit, userController.Register)
	r.POST("/login", anonLimit, userController.Login)
	r.POST("/refresh", anonLimit, userController.Refresh)

	// Всё остальное — только с access-токеном, лимит по пользователю
	authGroup := r.Group("", middleware.JWTAuthMiddleware(), middleware.RateLimitMiddleware(cfg.RateLimitUser, cfg.RateLimitWindow))
	{
		authGroup.POST("/logout", userController.Logout)

		authGroup.POST("/quotes", quoteController.CreateQuote)
		authGroup.GET("/quotes", quoteController.ListQuotes)
		authGroup.GET("/quotes/:id", quoteController.GetQuote)

		authGroup.POST("/applications", applicationController.CreateApplication)
		authGroup.GET("/applications", applicationController.ListApplications)
		authGroup.GET("/applications/:id", applicationController.GetApplication)
	}

	return r
}
