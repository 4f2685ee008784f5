// Package pricing derives the platform fee, tax and total of a booking from the
// service's base price. A Breakdown is computed once when a booking is created
// and stored with it; later catalog price changes never touch it.
package pricing

import (
	"lendahand/config"
	"lendahand/shared"
)

const (
	DefaultTaxRate     = 0.10
	DefaultPlatformFee = 10.0
)

type Breakdown struct {
	Base        float64 `json:"base"`
	PlatformFee float64 `json:"platform_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

type Calculator interface {
	// Calculate prices a service whose own platform fee is fee. A fee of zero
	// falls back to the configured default.
	Calculate(base, fee float64) Breakdown
	// Matches reports whether b is exactly what Calculate produces for its base and fee.
	Matches(b Breakdown) bool
}

type calculatorImpl struct {
	taxRate    float64
	defaultFee float64
}

func New(cfg *config.Config) Calculator {
	taxRate := cfg.Pricing.TaxRate
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}

	defaultFee := cfg.Pricing.DefaultPlatformFee
	if defaultFee <= 0 {
		defaultFee = DefaultPlatformFee
	}

	return &calculatorImpl{
		taxRate:    taxRate,
		defaultFee: defaultFee,
	}
}

func (c *calculatorImpl) Calculate(base, fee float64) Breakdown {
	if fee <= 0 {
		fee = c.defaultFee
	}

	return Compute(base, fee, c.taxRate)
}

func (c *calculatorImpl) Matches(b Breakdown) bool {
	return Compute(b.Base, b.PlatformFee, c.taxRate) == b
}

// Compute is tax = round2((base+fee)*rate) and total = round2(base+fee+tax).
func Compute(base, fee, rate float64) Breakdown {
	tax := shared.Round2((base + fee) * rate)

	return Breakdown{
		Base:        base,
		PlatformFee: fee,
		Tax:         tax,
		Total:       shared.Round2(base + fee + tax),
	}
}
