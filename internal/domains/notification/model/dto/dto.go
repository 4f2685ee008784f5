package dto

import "lendahand/internal/domains/notification/model"

type AddRequest struct {
	UserID    string     `json:"user_id"`
	Type      model.Type `json:"type"       validate:"required,oneof=booking_update message promo system"`
	Title     string     `json:"title"      validate:"required,max=120"`
	Body      string     `json:"body"       validate:"required"`
	BookingID string     `json:"booking_id"`
	ChatID    string     `json:"chat_id"`
}

type Summary struct {
	Items  []model.Notification `json:"items"`
	Unread int                  `json:"unread"`
}
