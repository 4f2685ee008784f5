package validator_test

import (
	"lendahand/shared/failure"
	"lendahand/shared/validator"
	"strings"
	"testing"
)

type slotRequest struct {
	Date     string  `validate:"required,isodate"     json:"date"`
	Time     string  `validate:"required,timeslot"    json:"time"`
	Method   string  `validate:"oneof=Card UPI Cash Wallet" json:"method"`
	Email    string  `validate:"omitempty,email"      json:"email"`
	Amount   float64 `validate:"gt=0"                 json:"amount"`
	Comments string  `validate:"omitempty,min=10"     json:"comments"`
}

func validSlotRequest() slotRequest {
	return slotRequest{
		Date:   "2026-11-02",
		Time:   "10:00 AM",
		Method: "Card",
		Amount: 104.5,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *slotRequest)
		expectError bool
		contains    string
	}{
		{
			name:   "valid struct",
			mutate: func(_ *slotRequest) {},
		},
		{
			name:        "missing date",
			mutate:      func(r *slotRequest) { r.Date = "" },
			expectError: true,
			contains:    "date is required",
		},
		{
			name:        "date in wrong format",
			mutate:      func(r *slotRequest) { r.Date = "02/11/2026" },
			expectError: true,
			contains:    "YYYY-MM-DD",
		},
		{
			name:        "time slot in 24h format",
			mutate:      func(r *slotRequest) { r.Time = "14:00" },
			expectError: true,
			contains:    "time slot",
		},
		{
			name:        "unknown payment method",
			mutate:      func(r *slotRequest) { r.Method = "Bitcoin" },
			expectError: true,
			contains:    "must be one of",
		},
		{
			name:        "invalid email",
			mutate:      func(r *slotRequest) { r.Email = "not-an-email" },
			expectError: true,
			contains:    "valid email",
		},
		{
			name:        "non-positive amount",
			mutate:      func(r *slotRequest) { r.Amount = 0 },
			expectError: true,
			contains:    "greater than",
		},
		{
			name:        "every violation is listed",
			mutate:      func(r *slotRequest) { r.Date, r.Time = "", "" },
			expectError: true,
			contains:    "date is required; time is required",
		},
		{
			name:        "short comment",
			mutate:      func(r *slotRequest) { r.Comments = "meh" },
			expectError: true,
			contains:    "greater than or equal to 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSlotRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if !tt.expectError {
				if err != nil {
					t.Errorf("expected no validation error, got: %v", err)
				}

				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !failure.IsKind(err, failure.KindValidation) {
				t.Errorf("expected validation failure, got kind %s", failure.GetKind(err))
			}

			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to contain %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{name: "valid required string", field: "test", tag: "required"},
		{name: "empty required string", field: "", tag: "required", expectError: true},
		{name: "valid iso date", field: "2026-10-19", tag: "isodate"},
		{name: "impossible iso date", field: "2026-02-30", tag: "isodate", expectError: true},
		{name: "valid time slot", field: "02:30 PM", tag: "timeslot"},
		{name: "invalid time slot", field: "noon", tag: "timeslot", expectError: true},
		{name: "rating in range", field: 4, tag: "gte=1,lte=5"},
		{name: "rating out of range", field: 6, tag: "gte=1,lte=5", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}
