package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/umarmrv/bima-calc-api/models"
)

// ApplicationService — движок заявок: превращает принятый расчёт в заявку
// и атомарно помечает расчёт использованным.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// CreateApplication оформляет заявку по расчёту. Предусловия проверяются
// по порядку: расчёт существует; принадлежит заявителю; статус ACTIVE;
// срок действия не истёк. Смена статуса расчёта и создание заявки
// выполняются в одной транзакции: из двух конкурентных попыток по одному
// расчёту выигрывает ровно одна, вторая получает конфликт.
func (s *ApplicationService) CreateApplication(requesterID uint, quoteID uuid.UUID, req models.ApplicationCreateRequest) (*models.Application, error) {
	if err := validateApplicationInput(req); err != nil {
		return nil, err
	}

	var app *models.Application
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.First(&quote, "id = ?", quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Field: "quote", Message: "quote not found"}
			}
			return fmt.Errorf("load quote: %w", err)
		}
		if quote.UserID != requesterID {
			return &ForbiddenError{Field: "quote", Message: "quote belongs to another user"}
		}
		if quote.Status != models.QuoteStatusActive {
			return &ConflictError{Field: "quote", Message: fmt.Sprintf("invalid quote status: %s", quote.Status)}
		}
		if quote.IsExpired(time.Now()) {
			return &ValidationError{Fields: map[string]string{"quote": "quote expired"}}
		}

		// Compare-and-swap по статусу: проигравшая конкурентная попытка
		// увидит RowsAffected == 0 и получит конфликт.
		res := tx.Model(&models.Quote{}).
			Where("id = ? AND status = ?", quote.ID, models.QuoteStatusActive).
			Update("status", models.QuoteStatusUsed)
		if res.Error != nil {
			return fmt.Errorf("mark quote used: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &ConflictError{Field: "quote", Message: fmt.Sprintf("invalid quote status: %s", models.QuoteStatusUsed)}
		}

		app = &models.Application{
			UserID:              requesterID,
			QuoteID:             quote.ID,
			FullName:            req.FullName,
			Phone:               req.Phone,
			Email:               req.Email,
			Tariff:              req.Tariff,
			TotalAmountSnapshot: quote.TotalAmount,
			Status:              models.ApplicationStatusNew,
			Meta:                datatypes.JSONMap{},
		}
		if err := tx.Create(app).Error; err != nil {
			return fmt.Errorf("create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplication возвращает заявку по id с той же семантикой
// NotFound/Forbidden, что и у расчётов.
func (s *ApplicationService) GetApplication(id uuid.UUID, requesterID uint) (*models.Application, error) {
	var app models.Application
	if err := s.DB.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Field: "id", Message: "application not found"}
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	if app.UserID != requesterID {
		return nil, &ForbiddenError{Field: "id", Message: "application belongs to another user"}
	}
	return &app, nil
}

// ListApplications возвращает все заявки пользователя, новые первыми
func (s *ApplicationService) ListApplications(requesterID uint) ([]models.Application, error) {
	apps := []models.Application{}
	if err := s.DB.Where("user_id = ?", requesterID).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func validateApplicationInput(req models.ApplicationCreateRequest) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.FullName) == "" {
		fields["full_name"] = "required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "required"
	}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "required"
	} else if !strings.Contains(req.Email, "@") {
		fields["email"] = "must be a valid email address"
	}
	if _, ok := basePrices[req.Tariff]; !ok {
		fields["tariff"] = "must be one of: OSAGO, KASKO"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
