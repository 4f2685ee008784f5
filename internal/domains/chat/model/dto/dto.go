package dto

import "lendahand/internal/domains/chat/model"

type OpenRequest struct {
	CustomerID   string `json:"customer_id"   validate:"required"`
	ProviderID   string `json:"provider_id"   validate:"required"`
	ProviderName string `json:"provider_name" validate:"required"`
}

type SendRequest struct {
	ChatID     string            `json:"chat_id"    validate:"required"`
	Text       string            `json:"text"       validate:"max=2000"`
	Attachment *model.Attachment `json:"attachment"`
}
