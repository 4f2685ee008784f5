package model

import "time"

const EntityName = "notification"

type Type string

const (
	TypeBookingUpdate Type = "booking_update"
	TypeMessage       Type = "message"
	TypePromo         Type = "promo"
	TypeSystem        Type = "system"
)

// Notification is addressed to UserID. An empty UserID is a broadcast shown to everyone.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	BookingID string    `json:"booking_id,omitempty"`
	ChatID    string    `json:"chat_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"timestamp"`
}

func (n Notification) GetID() string {
	return n.ID
}

// VisibleTo reports whether userID should see n.
func (n Notification) VisibleTo(userID string) bool {
	return n.UserID == "" || n.UserID == userID
}

// SeedNotifications is shown on first run.
func SeedNotifications() []Notification {
	at := time.Date(2026, time.February, 1, 9, 0, 0, 0, time.UTC)

	return []Notification{
		{
			ID:        "n_seed_2",
			Type:      TypePromo,
			Title:     "Weekend offer",
			Body:      "Use WELCOME50 for 50% off your next cleaning booking.",
			CreatedAt: at.Add(24 * time.Hour),
		},
		{
			ID:        "n_seed_1",
			Type:      TypeSystem,
			Title:     "Welcome to Lend a Hand",
			Body:      "Book trusted local professionals in a few taps.",
			Read:      true,
			CreatedAt: at,
		},
	}
}
