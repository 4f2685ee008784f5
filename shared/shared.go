package shared

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// CurrencySymbol prefixes every amount shown to users.
const CurrencySymbol = "₹"

// Round2 rounds half away from zero to two decimal places.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatMoney renders an amount with thousands separators and two decimals, e.g. "₹1,234.50".
func FormatMoney(amount float64) string {
	return CurrencySymbol + humanize.FormatFloat("#,###.##", Round2(amount))
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// NewID returns prefix + "_" + a random uuid, e.g. "b_0b8c...".
func NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// NewReference returns prefix followed by n upper-case hex characters, e.g. "TXN4F0A9C1B".
func NewReference(prefix string, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if n > len(hex) {
		n = len(hex)
	}

	return prefix + hex[:n]
}

// Ptr returns a pointer to a copy of value.
func Ptr[T any](value T) *T {
	return &value
}
