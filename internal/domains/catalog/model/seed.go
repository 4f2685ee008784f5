package model

const (
	CategoryCleaning   = "Cleaning"
	CategoryPlumbing   = "Plumbing"
	CategoryElectrical = "Electrical"
	CategoryBeauty     = "Beauty"
	CategoryTutoring   = "Tutoring"
)

var defaultSlots = []string{"09:00 AM", "10:00 AM", "11:00 AM", "01:00 PM", "02:00 PM", "03:00 PM", "04:00 PM", "05:00 PM"}

func slots() []string {
	return append([]string(nil), defaultSlots...)
}

// SeedServices is the catalog used when nothing has been stored yet.
func SeedServices() []Service {
	return []Service{
		{
			ID: "s1", Title: "Deep House Cleaning", Category: CategoryCleaning,
			Description: "Top-to-bottom cleaning of kitchen, bathrooms and living areas.",
			Price:       85, PriceUnit: PriceUnitHour, PlatformFee: 10, Rating: 4.8, ReviewCount: 124,
			ProviderID: "p1", ProviderName: "Sparkle Clean Co.",
			Availability: slots(), BusySlots: []string{"11:00 AM", "03:00 PM"},
		},
		{
			ID: "s2", Title: "Emergency Plumbing", Category: CategoryPlumbing,
			Description: "Leaks, blocked drains and burst pipes fixed the same day.",
			Price:       120, PriceUnit: PriceUnitVisit, PlatformFee: 15, Rating: 4.6, ReviewCount: 89,
			ProviderID: "p2", ProviderName: "FlowFix Plumbing",
			Availability: slots(), BusySlots: []string{"09:00 AM"},
		},
		{
			ID: "s3", Title: "Electrical Wiring Check", Category: CategoryElectrical,
			Description: "Full safety inspection of sockets, switches and the fuse board.",
			Price:       95, PriceUnit: PriceUnitFixed, PlatformFee: 10, Rating: 4.7, ReviewCount: 56,
			ProviderID: "p3", ProviderName: "BrightSpark Electric",
			Availability: slots(), BusySlots: []string{},
		},
		{
			ID: "s4", Title: "Bridal Makeup", Category: CategoryBeauty,
			Description: "Trial and wedding-day makeup at your venue.",
			Price:       250, PriceUnit: PriceUnitSession, PlatformFee: 20, Rating: 4.9, ReviewCount: 212,
			ProviderID: "p4", ProviderName: "Glow Studio",
			Availability: []string{"09:00 AM", "10:00 AM", "11:00 AM"}, BusySlots: []string{"10:00 AM"},
		},
		{
			ID: "s5", Title: "Math Tutoring", Category: CategoryTutoring,
			Description: "One-to-one school and college mathematics sessions.",
			Price:       40, PriceUnit: PriceUnitHour, PlatformFee: 5, Rating: 4.5, ReviewCount: 33,
			ProviderID: "p5", ProviderName: "Prof. Anita Rao",
			Availability: []string{"04:00 PM", "05:00 PM", "06:00 PM", "07:00 PM"}, BusySlots: []string{},
		},
		{
			ID: "s6", Title: "Sofa Shampooing", Category: CategoryCleaning,
			Description: "Foam shampoo and steam extraction for fabric sofas.",
			Price:       60, PriceUnit: PriceUnitFixed, PlatformFee: 0, Rating: 4.4, ReviewCount: 41,
			ProviderID: "p6", ProviderName: "FreshNest Services",
			Availability: slots(), BusySlots: []string{"01:00 PM"},
		},
	}
}

// SeedProviders lists the providers offered in the wizard's provider step.
func SeedProviders() []Provider {
	return []Provider{
		{ID: "p1", Name: "Sparkle Clean Co.", Business: "Sparkle Clean Co.", Category: CategoryCleaning, Rating: 4.8, Jobs: 320, Verified: true, HourlyPrice: 85},
		{ID: "p6", Name: "FreshNest Services", Business: "FreshNest Services", Category: CategoryCleaning, Rating: 4.4, Jobs: 97, Verified: true, HourlyPrice: 60},
		{ID: "p2", Name: "FlowFix Plumbing", Business: "FlowFix Plumbing", Category: CategoryPlumbing, Rating: 4.6, Jobs: 210, Verified: true, HourlyPrice: 120},
		{ID: "p3", Name: "BrightSpark Electric", Business: "BrightSpark Electric", Category: CategoryElectrical, Rating: 4.7, Jobs: 150, Verified: false, HourlyPrice: 95},
		{ID: "p4", Name: "Glow Studio", Business: "Glow Studio", Category: CategoryBeauty, Rating: 4.9, Jobs: 405, Verified: true, HourlyPrice: 250},
		{ID: "p5", Name: "Prof. Anita Rao", Business: "Independent Tutor", Category: CategoryTutoring, Rating: 4.5, Jobs: 60, Verified: true, HourlyPrice: 40},
	}
}

// SeedCoupons is keyed by upper-case code.
func SeedCoupons() map[string]Coupon {
	return map[string]Coupon{
		"FIRST10":   {Code: "FIRST10", Description: "10% off your first booking", Discount: 10},
		"SAVE20":    {Code: "SAVE20", Description: "20% off any cleaning service", Discount: 20},
		"WELCOME50": {Code: "WELCOME50", Description: "Flat 50 off for new members", Discount: 50},
	}
}
