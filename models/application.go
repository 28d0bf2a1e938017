package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Статусы заявки. Движок создаёт заявку только в NEW; дальнейшие переходы
// выполняет внешний процесс рассмотрения через сохранённое поле status.
const (
	ApplicationStatusNew       = "NEW"
	ApplicationStatusInReview  = "IN_REVIEW"
	ApplicationStatusApproved  = "APPROVED"
	ApplicationStatusRejected  = "REJECTED"
	ApplicationStatusCancelled = "CANCELLED"
	ApplicationStatusExpired   = "EXPIRED"
)

// Application представляет заявку, оформленную по принятому расчёту.
// Один расчёт может породить максимум одну заявку (uniqueIndex по quote_id).
type Application struct {
	ID                  uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	UserID              uint              `json:"user_id" gorm:"not null;index:idx_application_user"`
	QuoteID             uuid.UUID         `json:"quote" gorm:"type:uuid;uniqueIndex;not null"`
	FullName            string            `json:"full_name" gorm:"type:varchar(100);not null"`
	Phone               string            `json:"phone" gorm:"type:varchar(32);not null"`
	Email               string            `json:"email" gorm:"not null"`
	Tariff              string            `json:"tariff" gorm:"type:varchar(20);not null"`
	TotalAmountSnapshot decimal.Decimal   `json:"total_amount_snapshot" gorm:"type:decimal(12,2);not null"`
	Status              string            `json:"status" gorm:"type:varchar(12);default:'NEW'"`
	Meta                datatypes.JSONMap `json:"meta"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`

	User  User  `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Quote Quote `json:"-" gorm:"foreignKey:QuoteID;references:ID"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ApplicationCreateRequest структура для оформления заявки по расчёту
type ApplicationCreateRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Tariff   string `json:"tariff"`
	Quote    string `json:"quote"`
}
