package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUnits renders a raw token amount with the given decimals, always
// keeping at least one fractional digit: 1e18 with 18 decimals is "1.0".
func FormatUnits(value *big.Int, decimals int32) string {
	if value == nil {
		return ""
	}
	s := decimal.NewFromBigInt(value, -decimals).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
