package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/boostlab/smm-panel/internal/domain/error"
)

// Monetary values are stored as int64 paise to avoid floating point
// precision issues. API boundaries speak strings with 2 decimal places.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a string amount and converts it to paise
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, amount)
	}
	if value.IsNegative() {
		return 0, errs.ErrNegativeAmount
	}
	if value.Exponent() < -MaxDecimalPlaces {
		return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}

	return value.Shift(MaxDecimalPlaces).IntPart(), nil
}

// FormatAmount converts an amount in paise to a decimal string.
// For example: 1015 becomes "10.15", -1 becomes "-0.01".
func FormatAmount(paise int64) string {
	return decimal.New(paise, -MaxDecimalPlaces).StringFixed(MaxDecimalPlaces)
}

// OrderPrice computes the charge in paise for an order:
// ratePerThousand (paise per 1000 units) x quantity / 1000,
// rounded half away from zero to whole paise.
func OrderPrice(ratePerThousand int64, quantity int64) int64 {
	price := decimal.NewFromInt(ratePerThousand).
		Mul(decimal.NewFromInt(quantity)).
		Div(decimal.NewFromInt(1000)).
		Round(0)
	return price.IntPart()
}
