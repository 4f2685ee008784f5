package model

import "time"

const EntityName = "review"

// Categories are the optional per-aspect ratings.
var Categories = []string{"quality", "punctuality", "professionalism", "value"}

type Review struct {
	ID           string         `json:"id"`
	BookingID    string         `json:"booking_id"`
	ServiceID    string         `json:"service_id"`
	ProviderID   string         `json:"provider_id"`
	CustomerID   string         `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Rating       int            `json:"rating"`
	Categories   map[string]int `json:"categories,omitempty"`
	Comment      string         `json:"comment"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (r Review) GetID() string {
	return r.ID
}

// SeedReviews are existing reviews of the demo catalog.
func SeedReviews() []Review {
	at := time.Date(2026, time.January, 20, 18, 0, 0, 0, time.UTC)

	return []Review{
		{
			ID: "r_seed_2", BookingID: "b_hist_2", ServiceID: "s2", ProviderID: "p2", CustomerID: "u9",
			CustomerName: "Meera K.", Rating: 4, Comment: "Arrived late but fixed the leak properly.", CreatedAt: at.Add(48 * time.Hour),
		},
		{
			ID: "r_seed_1", BookingID: "b_hist_1", ServiceID: "s1", ProviderID: "p1", CustomerID: "u8",
			CustomerName: "Arjun S.", Rating: 5, Comment: "Spotless kitchen, very thorough team.", CreatedAt: at,
		},
	}
}
