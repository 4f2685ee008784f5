package model

import (
	bookingModel "lendahand/internal/domains/booking/model"
	catalogModel "lendahand/internal/domains/catalog/model"
	"lendahand/internal/domains/pricing"
	"time"
)

const (
	TransactionPrefix = "TXN"
	TransactionDigits = 10
	InvoicePrefix     = "LAH-"

	invoiceDigits = 6
)

// Invoice is rebuilt from a paid booking whenever it is requested. Its amounts
// are the booking's frozen breakdown.
type Invoice struct {
	Number        string               `json:"number"`
	BookingID     string               `json:"booking_id"`
	BilledTo      string               `json:"billed_to"`
	IssuedAt      time.Time            `json:"issued_at"`
	ServiceTitle  string               `json:"service_title"`
	ProviderName  string               `json:"provider_name"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Method        string               `json:"method"`
	TransactionID string               `json:"transaction_id"`
	Price         pricing.Breakdown    `json:"price"`
	Coupon        *catalogModel.Coupon `json:"coupon,omitempty"`
	// Consistent reports whether re-pricing the frozen base and fee reproduces the frozen totals.
	Consistent bool `json:"consistent"`
}

type Receipt struct {
	Booking bookingModel.Booking `json:"booking"`
	Invoice Invoice              `json:"invoice"`
}

// InvoiceNumber derives a stable invoice number from a transaction id.
func InvoiceNumber(transactionID string) string {
	if len(transactionID) <= invoiceDigits {
		return InvoicePrefix + transactionID
	}

	return InvoicePrefix + transactionID[len(transactionID)-invoiceDigits:]
}
