package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/umarmrv/bima-calc-api/models"
)

// StartQuoteExpiryCron запускает ежечасную уборку просроченных расчётов.
// Это только гигиена хранилища: пригодность расчёта всегда проверяется
// по valid_until на чтении, а не по сохранённому статусу.
func StartQuoteExpiryCron(db *gorm.DB) {
	c := cron.New()
	c.AddFunc("@hourly", func() {
		SweepExpiredQuotes(db)
	})
	c.Start()

	// первичный прогон при старте
	go SweepExpiredQuotes(db)
}

// SweepExpiredQuotes помечает EXPIRED все активные расчёты с истёкшим
// сроком действия и возвращает число обновлённых строк.
func SweepExpiredQuotes(db *gorm.DB) int64 {
	res := db.Model(&models.Quote{}).
		Where("status = ? AND valid_until <= ?", models.QuoteStatusActive, time.Now()).
		Update("status", models.QuoteStatusExpired)
	if res.Error != nil {
		log.Printf("[QUOTE_EXPIRY] sweep failed: %v", res.Error)
		return 0
	}
	if res.RowsAffected > 0 {
		log.Printf("[QUOTE_EXPIRY] expired %d stale quotes", res.RowsAffected)
	}
	return res.RowsAffected
}
