package model

import (
	"lendahand/shared/constant"
	gModel "lendahand/shared/model"
	"time"
)

const (
	EntityName = "user"

	// demoPasswordHash is the bcrypt hash of "password".
	demoPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"
)

type Address struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Address string `json:"address"`
}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone"`
	WalletBalance  float64   `json:"wallet_balance"`
	SavedAddresses []Address `json:"saved_addresses"`
	gModel.Metadata
}

func (u User) GetID() string {
	return u.ID
}

// SeedUsers returns the demo accounts. Every password is "password".
func SeedUsers() []User {
	joined := time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

	return []User{
		{
			ID: "u1", Name: "Priya Sharma", Email: "customer@lendahand.app", Password: demoPasswordHash,
			Role: constant.RoleCustomer, Phone: "+91 98765 43210", WalletBalance: 50,
			SavedAddresses: []Address{
				{ID: "a1", Label: "Home", Address: "12 MG Road, Bengaluru 560001"},
				{ID: "a2", Label: "Office", Address: "4th Floor, Prestige Tower, Bengaluru 560025"},
			},
			Metadata: gModel.NewMetadata(joined, constant.ActorSystem),
		},
		{
			ID: "p1", Name: "Sparkle Clean Co.", Email: "provider@lendahand.app", Password: demoPasswordHash,
			Role: constant.RoleProvider, Phone: "+91 90000 11111", SavedAddresses: []Address{},
			Metadata: gModel.NewMetadata(joined, constant.ActorSystem),
		},
		{
			ID: "admin", Name: "Platform Admin", Email: "admin@lendahand.app", Password: demoPasswordHash,
			Role: constant.RoleAdmin, SavedAddresses: []Address{},
			Metadata: gModel.NewMetadata(joined, constant.ActorSystem),
		},
	}
}
