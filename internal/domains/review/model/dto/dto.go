package dto

import "lendahand/internal/domains/review/model"

type ReviewRequest struct {
	BookingID  string         `json:"booking_id"  validate:"required"`
	CustomerID string         `json:"customer_id" validate:"required"`
	Rating     int            `json:"rating"      validate:"required,min=1,max=5"`
	Categories map[string]int `json:"categories"  validate:"omitempty,dive,keys,oneof=quality punctuality professionalism value,endkeys,min=1,max=5"`
	Comment    string         `json:"comment"     validate:"required"`
}

type ServiceReviews struct {
	Items   []model.Review `json:"items"`
	Average float64        `json:"average"`
}
