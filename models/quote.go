package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Тарифы
const (
	TariffOSAGO = "OSAGO"
	TariffKASKO = "KASKO"
)

// Типы автомобилей
const (
	CarTypeSedan = "sedan"
	CarTypeSUV   = "suv"
	CarTypeTruck = "truck"
	CarTypeSport = "sport"
)

// Статусы расчёта
const (
	QuoteStatusActive  = "ACTIVE"
	QuoteStatusUsed    = "USED"
	QuoteStatusExpired = "EXPIRED"
)

// Quote представляет рассчитанное предложение с ограниченным сроком действия.
// Статус меняется только ACTIVE -> USED (оформление заявки) или
// ACTIVE -> EXPIRED (истечение valid_until); USED и EXPIRED терминальные.
type Quote struct {
	ID               uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uint            `json:"user_id" gorm:"not null;index:idx_quote_user"`
	Tariff           string          `json:"tariff" gorm:"type:varchar(20);not null"`
	DriverAge        int             `json:"driver_age" gorm:"not null"`
	DriverExperience int             `json:"driver_experience" gorm:"not null"`
	CarType          string          `json:"car_type" gorm:"type:varchar(20);not null"`
	BaseAmount       decimal.Decimal `json:"base_amount" gorm:"type:decimal(12,2);not null"`
	CoefAge          decimal.Decimal `json:"coef_age" gorm:"type:decimal(6,3);not null"`
	CoefExp          decimal.Decimal `json:"coef_exp" gorm:"type:decimal(6,3);not null"`
	CoefCar          decimal.Decimal `json:"coef_car" gorm:"type:decimal(6,3);not null"`
	TotalAmount      decimal.Decimal `json:"total_amount" gorm:"type:decimal(12,2);not null"`
	Currency         string          `json:"currency" gorm:"type:varchar(3);default:'TJS'"`
	RulesetVersion   string          `json:"ruleset_version" gorm:"type:varchar(16);default:'v1'"`
	ValidUntil       time.Time       `json:"valid_until" gorm:"not null"`
	Status           string          `json:"status" gorm:"type:varchar(10);default:'ACTIVE';index:idx_quote_status"`
	CreatedAt        time.Time       `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// IsExpired проверяет срок действия по времени, не по сохранённому статусу.
// Потребители обязаны проверять и статус, и valid_until.
func (q *Quote) IsExpired(now time.Time) bool {
	return !q.ValidUntil.After(now)
}

// QuoteCreateRequest структура для расчёта стоимости
type QuoteCreateRequest struct {
	Tariff           string `json:"tariff"`
	DriverAge        int    `json:"driver_age"`
	DriverExperience int    `json:"driver_experience"`
	CarType          string `json:"car_type"`
}
