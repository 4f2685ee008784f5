package dto

import (
	"lendahand/internal/domains/account/model"
	"lendahand/shared"
	"lendahand/shared/constant"
	gModel "lendahand/shared/model"
	"strings"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer provider admin"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=customer provider"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleCustomer
	}

	return model.User{
		ID:             shared.NewID("u"),
		Name:           r.Name,
		Email:          strings.ToLower(r.Email),
		Password:       hashedPassword,
		Role:           role,
		SavedAddresses: []model.Address{},
		Metadata:       gModel.NewMetadata(now, constant.ActorSystem),
	}
}

type AddAddressRequest struct {
	Label   string `json:"label"`
	Address string `json:"address" validate:"required,max=255"`
}

type WalletRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	Amount float64 `json:"amount"  validate:"gt=0"`
}

type UserResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	Phone          string          `json:"phone"`
	WalletBalance  float64         `json:"wallet_balance"`
	SavedAddresses []model.Address `json:"saved_addresses"`
	JoinedDate     string          `json:"joined_date"`
}

// FromModel copies everything but the password hash.
func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Name
	r.Email = user.Email
	r.Role = user.Role
	r.Phone = user.Phone
	r.WalletBalance = user.WalletBalance
	r.SavedAddresses = append([]model.Address(nil), user.SavedAddresses...)
	r.JoinedDate = user.CreatedAt.Format(constant.DateFormat)
}
