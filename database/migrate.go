package database

import (
	"github.com/umarmrv/bima-calc-api/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Quote{}, &models.Application{}); err != nil {
		return err
	}

	// Составные индексы под выборки "мои записи, новые первыми"
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_quotes_user_created ON quotes(user_id, created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_applications_user_created ON applications(user_id, created_at DESC);
	`).Error; err != nil {
		return err
	}

	// Индекс под уборку просроченных расчётов
	return db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_quotes_status_valid_until ON quotes(status, valid_until);
	`).Error
}
