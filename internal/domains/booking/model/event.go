package model

import "time"

type EventType string

const (
	EventCreated       EventType = "booking.created"
	EventStatusChanged EventType = "booking.status_changed"
	EventRescheduled   EventType = "booking.rescheduled"
	EventPaid          EventType = "booking.paid"
	EventReviewed      EventType = "booking.reviewed"
)

// Event describes a committed change to a booking. Booking is the state after the change.
type Event struct {
	Type    EventType `json:"type"`
	Booking Booking   `json:"booking"`
	From    Status    `json:"from"`
	To      Status    `json:"to"`
	Reason  string    `json:"reason,omitempty"`
	Actor   string    `json:"actor"`
	At      time.Time `json:"at"`
}
