package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/umarmrv/bima-calc-api/models"
)

// QuoteService — движок расчётов: владеет расчётом стоимости и
// жизненным циклом Quote.
type QuoteService struct {
	DB *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{DB: db}
}

// CreateQuote валидирует входные данные, считает стоимость по тарифной
// сетке и сохраняет активный расчёт со сроком действия 7 дней.
// Ошибки валидации собираются по всем полям сразу.
func (s *QuoteService) CreateQuote(userID uint, req models.QuoteCreateRequest) (*models.Quote, error) {
	fields := map[string]string{}

	if _, ok := basePrices[req.Tariff]; !ok {
		fields["tariff"] = "must be one of: OSAGO, KASKO"
	}
	if _, ok := carCoefs[req.CarType]; !ok {
		fields["car_type"] = "must be one of: sedan, suv, truck, sport"
	}
	if req.DriverAge < 18 || req.DriverAge > 100 {
		fields["driver_age"] = "must be between 18 and 100"
	}
	if req.DriverExperience < 0 || req.DriverExperience > 80 {
		fields["driver_experience"] = "must be between 0 and 80"
	} else if req.DriverExperience > req.DriverAge-18 {
		fields["driver_experience"] = "cannot exceed driver_age minus 18"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	calc := CalculatePremium(req.Tariff, req.DriverAge, req.DriverExperience, req.CarType)

	quote := &models.Quote{
		UserID:           userID,
		Tariff:           req.Tariff,
		DriverAge:        req.DriverAge,
		DriverExperience: req.DriverExperience,
		CarType:          req.CarType,
		BaseAmount:       calc.Base,
		CoefAge:          calc.CoefAge,
		CoefExp:          calc.CoefExp,
		CoefCar:          calc.CoefCar,
		TotalAmount:      calc.Total,
		Currency:         "TJS",
		RulesetVersion:   RulesetVersion,
		ValidUntil:       time.Now().Add(QuoteTTLDays * 24 * time.Hour),
		Status:           models.QuoteStatusActive,
	}
	if err := s.DB.Create(quote).Error; err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	return quote, nil
}

// GetQuote возвращает расчёт по id. Чужой расчёт не отдаём: проверка
// владельца выполняется до возврата данных.
func (s *QuoteService) GetQuote(id uuid.UUID, requesterID uint) (*models.Quote, error) {
	var quote models.Quote
	if err := s.DB.First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Field: "id", Message: "quote not found"}
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote.UserID != requesterID {
		return nil, &ForbiddenError{Field: "id", Message: "quote belongs to another user"}
	}
	return &quote, nil
}

// ListQuotes возвращает все расчёты пользователя, новые первыми
func (s *QuoteService) ListQuotes(requesterID uint) ([]models.Quote, error) {
	quotes := []models.Quote{}
	if err := s.DB.Where("user_id = ?", requesterID).Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}
