package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/go-redis/redis/v8"

	"github.com/umarmrv/bima-calc-api/config"
	"github.com/umarmrv/bima-calc-api/database"
	"github.com/umarmrv/bima-calc-api/routes"
	"github.com/umarmrv/bima-calc-api/services"
	"github.com/umarmrv/bima-calc-api/utils"
)

func main() {
	// Устанавливаем часовой пояс Таджикистана для всех логов
	dushanbeLocation, err := time.LoadLocation("Asia/Dushanbe")
	if err != nil {
		dushanbeLocation = time.FixedZone("TJT", 5*60*60)
	}
	time.Local = dushanbeLocation

	// Конфиг (.env или переменные окружения)
	cfg := config.LoadConfig()

	// Файловые логи ошибок и паник
	if err := utils.InitLogger(); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	// Подключение к PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Устанавливаем глобальный *gorm.DB для контроллеров
	utils.SetDB(db)

	// Миграция
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	// Подключение к Redis (черный список токенов, лимиты запросов)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	log.Println("Connected to Redis")

	// Уборка просроченных расчётов
	services.StartQuoteExpiryCron(db)
	log.Println("Quote expiry cron started")

	// Создание Gin роутера и настройка всех маршрутов
	r := routes.SetupRouter(cfg)

	log.Printf("Server is running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
