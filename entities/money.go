package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for money columns.
const MoneyScale = 2

// maxMoney is the first value that no longer fits DECIMAL(10,2).
var maxMoney = decimal.New(1, 8)

// NormalizeMoney rounds v to the money scale and rejects values that do
// not fit a DECIMAL(10,2) column.
func NormalizeMoney(v decimal.Decimal) (decimal.Decimal, error) {
	rounded := v.Round(MoneyScale)
	if rounded.Abs().GreaterThanOrEqual(maxMoney) {
		return decimal.Decimal{}, fmt.Errorf("amount %s out of range", v.String())
	}
	return rounded, nil
}
