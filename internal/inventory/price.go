package inventory

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
)

func parsePrice(value string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "avg_price must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "avg_price cannot be negative")
	}
	return price, nil
}
