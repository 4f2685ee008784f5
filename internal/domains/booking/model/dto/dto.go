package dto

import (
	"lendahand/internal/domains/booking/model"
	gDto "lendahand/shared/dto"
)

const (
	TabUpcoming  = "upcoming"
	TabCompleted = "completed"
	TabCancelled = "cancelled"
	TabAll       = "all"
)

type ListFilter struct {
	Tab string `json:"tab" validate:"omitempty,oneof=upcoming completed cancelled all"`
	gDto.QueryParams
}

// Match reports whether b belongs on the filter's tab. An empty tab matches everything.
func (f ListFilter) Match(b model.Booking) bool {
	switch f.Tab {
	case TabUpcoming:
		return b.Status.IsUpcoming()
	case TabCompleted:
		return b.Status == model.StatusCompleted
	case TabCancelled:
		return b.Status == model.StatusCancelled
	default:
		return true
	}
}

type RescheduleRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Date      string `json:"date"       validate:"required,isodate"`
	Time      string `json:"time"       validate:"required,timeslot"`
}

type CancelRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Reason    string `json:"reason"     validate:"omitempty,max=500"`
}

type PaymentRecord struct {
	BookingID     string `json:"booking_id"     validate:"required"`
	Method        string `json:"method"         validate:"required,oneof=Card UPI Cash Wallet"`
	TransactionID string `json:"transaction_id" validate:"required"`
}

type Stats struct {
	Total      int                  `json:"total"`
	ByStatus   map[model.Status]int `json:"by_status"`
	ByCategory map[string]int       `json:"by_category"`
	Revenue    float64              `json:"revenue"`
	Paid       int                  `json:"paid"`
}
