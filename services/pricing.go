package services

import (
	"github.com/shopspring/decimal"

	"github.com/umarmrv/bima-calc-api/models"
)

// Тарифная сетка версии v1. Таблицы статичные, на рантайме не меняются.
const (
	RulesetVersion = "v1"
	QuoteTTLDays   = 7
)

// Базовые цены по тарифам, валюта TJS
var basePrices = map[string]decimal.Decimal{
	models.TariffOSAGO: decimal.NewFromInt(1000),
	models.TariffKASKO: decimal.NewFromInt(5000),
}

type coefRange struct {
	Low  int
	High int
	Coef decimal.Decimal
}

var ageRanges = []coefRange{
	{18, 21, decimal.RequireFromString("1.6")},
	{22, 25, decimal.RequireFromString("1.3")},
	{26, 60, decimal.RequireFromString("1.0")},
	{61, 120, decimal.RequireFromString("1.2")},
}

var expRanges = []coefRange{
	{0, 0, decimal.RequireFromString("1.5")}, // без стажа
	{1, 3, decimal.RequireFromString("1.2")},
	{4, 100, decimal.RequireFromString("1.0")},
}

var carCoefs = map[string]decimal.Decimal{
	models.CarTypeSedan: decimal.RequireFromString("1.00"),
	models.CarTypeSUV:   decimal.RequireFromString("1.15"),
	models.CarTypeTruck: decimal.RequireFromString("1.25"),
	models.CarTypeSport: decimal.RequireFromString("1.40"),
}

// pickFromRanges возвращает коэффициент первого диапазона, в который попало
// значение (границы включительно). Диапазоны проверяются в порядке
// объявления, поэтому при пересечении выигрывает первый. Без попадания — 1.0.
func pickFromRanges(value int, ranges []coefRange) decimal.Decimal {
	for _, r := range ranges {
		if r.Low <= value && value <= r.High {
			return r.Coef
		}
	}
	return decimal.NewFromInt(1)
}

// Calculated результат расчёта стоимости по тарифной сетке
type Calculated struct {
	Base    decimal.Decimal
	CoefAge decimal.Decimal
	CoefExp decimal.Decimal
	CoefCar decimal.Decimal
	Total   decimal.Decimal
}

// CalculatePremium считает стоимость: base * c_age * c_exp * c_car,
// итог округляется до 2 знаков.
func CalculatePremium(tariff string, driverAge, driverExperience int, carType string) Calculated {
	base := basePrices[tariff]
	cAge := pickFromRanges(driverAge, ageRanges)
	cExp := pickFromRanges(driverExperience, expRanges)
	cCar := carCoefs[carType]
	total := base.Mul(cAge).Mul(cExp).Mul(cCar).Round(2)
	return Calculated{
		Base:    base,
		CoefAge: cAge,
		CoefExp: cExp,
		CoefCar: cCar,
		Total:   total,
	}
}
