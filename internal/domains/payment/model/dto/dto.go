package dto

type PayRequest struct {
	BookingID  string `json:"booking_id"  validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	Method     string `json:"method"      validate:"required,oneof=Card UPI Cash Wallet"`
}
