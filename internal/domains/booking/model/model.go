package model

import (
	"fmt"
	catalogModel "lendahand/internal/domains/catalog/model"
	"lendahand/internal/domains/pricing"
	gModel "lendahand/shared/model"
	"time"
)

const (
	EntityName = "booking"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"

	PaymentMethodCard   = "Card"
	PaymentMethodUPI    = "UPI"
	PaymentMethodCash   = "Cash"
	PaymentMethodWallet = "Wallet"

	RecurrenceNone    = "none"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

// HistoryEntry is one line of a booking's append-only status history. Marker
// distinguishes entries that share a status, such as a reschedule back to Requested.
type HistoryEntry struct {
	Status    Status    `json:"status"`
	Marker    string    `json:"marker,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Booking struct {
	ID            string               `json:"id"`
	CustomerID    string               `json:"customer_id"`
	Service       catalogModel.Service `json:"service"`
	ProviderID    string               `json:"provider_id"`
	ProviderName  string               `json:"provider_name"`
	Date          string               `json:"date"`
	Time          string               `json:"time"`
	Address       string               `json:"address"`
	Status        Status               `json:"status"`
	Recurrence    string               `json:"recurrence"`
	Price         pricing.Breakdown    `json:"price"`
	Coupon        *catalogModel.Coupon `json:"coupon"`
	PaymentMethod string               `json:"payment_method"`
	PaymentStatus string               `json:"payment_status"`
	TransactionID *string              `json:"transaction_id"`
	PaidAt        *time.Time           `json:"paid_at"`
	ReviewID      *string              `json:"review_id"`
	CancelReason  string               `json:"cancel_reason,omitempty"`
	StatusHistory []HistoryEntry       `json:"status_history"`
	Version       int                  `json:"version"`
	gModel.Metadata
}

func (b Booking) GetID() string {
	return b.ID
}

// Transition sets the status and appends the matching history entry.
func (b *Booking) Transition(to Status, marker string, at time.Time) {
	b.Status = to
	b.StatusHistory = append(b.StatusHistory, HistoryEntry{
		Status:    to,
		Marker:    marker,
		Timestamp: at,
	})
}

// CheckHistory verifies that the history is non-empty, ends in the current status
// and is in chronological order.
func (b Booking) CheckHistory() error {
	if len(b.StatusHistory) == 0 {
		return fmt.Errorf("booking %s has no status history", b.ID)
	}

	if last := b.StatusHistory[len(b.StatusHistory)-1]; last.Status != b.Status {
		return fmt.Errorf("booking %s is %s but its history ends in %s", b.ID, b.Status, last.Status)
	}

	for i := 1; i < len(b.StatusHistory); i++ {
		if b.StatusHistory[i].Timestamp.Before(b.StatusHistory[i-1].Timestamp) {
			return fmt.Errorf("booking %s history is out of order at entry %d", b.ID, i)
		}
	}

	return nil
}

// IsPaid reports whether a payment has been recorded.
func (b Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// Clone returns a copy sharing no slices or pointers with b.
func (b Booking) Clone() Booking {
	b.Service = b.Service.Clone()
	b.StatusHistory = append([]HistoryEntry(nil), b.StatusHistory...)

	if b.Coupon != nil {
		coupon := *b.Coupon
		b.Coupon = &coupon
	}

	if b.TransactionID != nil {
		id := *b.TransactionID
		b.TransactionID = &id
	}

	if b.PaidAt != nil {
		at := *b.PaidAt
		b.PaidAt = &at
	}

	if b.ReviewID != nil {
		id := *b.ReviewID
		b.ReviewID = &id
	}

	return b
}

// NewBooking turns a completed draft into a Requested booking. The service is
// copied and the price is frozen as given.
func NewBooking(id string, draft Draft, customerID string, price pricing.Breakdown, now time.Time) Booking {
	method := draft.PaymentMethod
	if method == "" {
		method = PaymentMethodCard
	}

	recurrence := draft.Recurrence
	if recurrence == "" {
		recurrence = RecurrenceNone
	}

	booking := Booking{
		ID:            id,
		CustomerID:    customerID,
		Service:       draft.Service.Clone(),
		ProviderID:    draft.Provider.ID,
		ProviderName:  draft.Provider.Name,
		Date:          draft.Date,
		Time:          draft.Time,
		Address:       draft.Address,
		Recurrence:    recurrence,
		Price:         price,
		PaymentMethod: method,
		PaymentStatus: PaymentStatusPending,
		Version:       1,
		Metadata:      gModel.NewMetadata(now, customerID),
	}

	if draft.Coupon != nil {
		coupon := *draft.Coupon
		booking.Coupon = &coupon
	}

	booking.Transition(StatusRequested, "", now)

	return booking
}
