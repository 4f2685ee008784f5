package model

import (
	catalogModel "lendahand/internal/domains/catalog/model"
	"lendahand/internal/domains/pricing"
	"lendahand/shared"
	gModel "lendahand/shared/model"
	"time"
)

// SeedBookings returns the demo customer's booking history.
func SeedBookings() []Booking {
	services := catalogModel.SeedServices()
	created := time.Date(2026, time.February, 2, 10, 0, 0, 0, time.UTC)

	completed := Booking{
		ID:            "b_seed_1",
		CustomerID:    "u1",
		Service:       services[0],
		ProviderID:    "p1",
		ProviderName:  "Sparkle Clean Co.",
		Date:          "2026-02-05",
		Time:          "10:00 AM",
		Address:       "12 MG Road, Bengaluru 560001",
		Recurrence:    RecurrenceNone,
		Price:         pricing.Compute(services[0].Price, services[0].PlatformFee, pricing.DefaultTaxRate),
		PaymentMethod: PaymentMethodUPI,
		PaymentStatus: PaymentStatusPaid,
		TransactionID: shared.Ptr("TXNSEED0001"),
		PaidAt:        &created,
		Version:       4,
		Metadata:      gModel.NewMetadata(created, "u1"),
	}
	completed.Transition(StatusRequested, "", created)
	completed.Transition(StatusConfirmed, "", created.Add(2*time.Hour))
	completed.Transition(StatusInProgress, "", created.Add(72*time.Hour))
	completed.Transition(StatusCompleted, "", created.Add(75*time.Hour))

	cancelled := Booking{
		ID:            "b_seed_2",
		CustomerID:    "u1",
		Service:       services[1],
		ProviderID:    "p2",
		ProviderName:  "FlowFix Plumbing",
		Date:          "2026-02-20",
		Time:          "02:00 PM",
		Address:       "4th Floor, Prestige Tower, Bengaluru 560025",
		Recurrence:    RecurrenceNone,
		Price:         pricing.Compute(services[1].Price, services[1].PlatformFee, pricing.DefaultTaxRate),
		PaymentMethod: PaymentMethodCash,
		PaymentStatus: PaymentStatusPending,
		CancelReason:  "Fixed it myself",
		Version:       2,
		Metadata:      gModel.NewMetadata(created.Add(24*time.Hour), "u1"),
	}
	cancelled.Transition(StatusRequested, "", created.Add(24*time.Hour))
	cancelled.Transition(StatusCancelled, "", created.Add(30*time.Hour))

	return []Booking{cancelled, completed}
}
