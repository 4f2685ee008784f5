package model

import (
	"fmt"
	"lendahand/shared/failure"
	"slices"
)

const (
	EntityName = "service"

	PriceUnitHour    = "hour"
	PriceUnitFixed   = "fixed"
	PriceUnitVisit   = "visit"
	PriceUnitSession = "session"
)

// Service is a catalog entry. Bookings keep their own copy of it.
type Service struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	PriceUnit    string   `json:"price_unit"`
	PlatformFee  float64  `json:"platform_fee"`
	Rating       float64  `json:"rating"`
	ReviewCount  int      `json:"review_count"`
	ProviderID   string   `json:"provider_id"`
	ProviderName string   `json:"provider_name"`
	Availability []string `json:"availability"`
	BusySlots    []string `json:"busy_slots"`
}

func (s Service) GetID() string {
	return s.ID
}

// Validate checks the catalog invariants: a positive price, a known unit and
// busy slots drawn from the availability list.
func (s Service) Validate() error {
	if s.ID == "" || s.Title == "" || s.Category == "" {
		return failure.Validation("service id, title and category are required") //nolint:wrapcheck
	}

	if s.Price <= 0 {
		return failure.Validation(fmt.Sprintf("service %s must have a positive price", s.ID)) //nolint:wrapcheck
	}

	switch s.PriceUnit {
	case PriceUnitHour, PriceUnitFixed, PriceUnitVisit, PriceUnitSession:
	default:
		return failure.Validation(fmt.Sprintf("service %s has unknown price unit %q", s.ID, s.PriceUnit)) //nolint:wrapcheck
	}

	for _, slot := range s.BusySlots {
		if !slices.Contains(s.Availability, slot) {
			return failure.Validation(fmt.Sprintf("busy slot %s of service %s is not in its availability", slot, s.ID)) //nolint:wrapcheck
		}
	}

	return nil
}

// IsSlotOpen reports whether slot is offered and not already taken.
func (s Service) IsSlotOpen(slot string) bool {
	return slices.Contains(s.Availability, slot) && !slices.Contains(s.BusySlots, slot)
}

// OpenSlots returns the availability minus the busy slots, in order.
func (s Service) OpenSlots() []string {
	open := make([]string, 0, len(s.Availability))

	for _, slot := range s.Availability {
		if !slices.Contains(s.BusySlots, slot) {
			open = append(open, slot)
		}
	}

	return open
}

// Clone returns a deep copy so a booking snapshot shares no slices with the catalog.
func (s Service) Clone() Service {
	s.Availability = slices.Clone(s.Availability)
	s.BusySlots = slices.Clone(s.BusySlots)

	return s
}

type Provider struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Business    string  `json:"business"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	Jobs        int     `json:"jobs"`
	Verified    bool    `json:"verified"`
	HourlyPrice float64 `json:"hourly_price"`
}

type Coupon struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
}
