package model

import (
	catalogModel "lendahand/internal/domains/catalog/model"
	"lendahand/shared/failure"
	"lendahand/shared/timezone"
	"slices"
	"strings"
	"time"
)

// Wizard steps, in the only order they can be completed.
const (
	StepService  = 1
	StepProvider = 2
	StepDateTime = 3
	StepAddress  = 4
	StepPricing  = 5
	StepConfirm  = 6
)

// Draft is the booking being assembled by the wizard. Fields are only ever
// added or overwritten, never cleared, until the wizard starts over.
type Draft struct {
	Step          int                    `json:"step"`
	Furthest      int                    `json:"furthest"`
	Service       *catalogModel.Service  `json:"service"`
	Provider      *catalogModel.Provider `json:"provider"`
	Date          string                 `json:"date"`
	Time          string                 `json:"time"`
	Address       string                 `json:"address"`
	Recurrence    string                 `json:"recurrence"`
	Coupon        *catalogModel.Coupon   `json:"coupon"`
	PaymentMethod string                 `json:"payment_method"`
}

// StepData carries the fields collected on one wizard step. Zero values are
// treated as "not provided" and leave the draft unchanged.
type StepData struct {
	Provider      *catalogModel.Provider `json:"provider"`
	Date          string                 `json:"date"`
	Time          string                 `json:"time"`
	Address       string                 `json:"address"`
	Recurrence    string                 `json:"recurrence"`
	Coupon        *catalogModel.Coupon   `json:"coupon"`
	PaymentMethod string                 `json:"payment_method"`
}

// Merge returns a copy of d with every provided field of data applied.
func (d Draft) Merge(data StepData) Draft {
	if data.Provider != nil {
		provider := *data.Provider
		d.Provider = &provider
	}

	if data.Date != "" {
		d.Date = data.Date
	}

	if data.Time != "" {
		d.Time = data.Time
	}

	if data.Address != "" {
		d.Address = data.Address
	}

	if data.Recurrence != "" {
		d.Recurrence = data.Recurrence
	}

	if data.Coupon != nil {
		coupon := *data.Coupon
		d.Coupon = &coupon
	}

	if data.PaymentMethod != "" {
		d.PaymentMethod = data.PaymentMethod
	}

	return d
}

// CheckStep returns a validation failure when the requirements for leaving
// step are not met. now decides which calendar days are in the past.
func (d Draft) CheckStep(step int, now time.Time) error {
	switch step {
	case StepService:
		if d.Service == nil {
			return failure.Validation("select a service") //nolint:wrapcheck
		}
	case StepProvider:
		if d.Provider == nil {
			return failure.Validation("select a provider") //nolint:wrapcheck
		}

		if d.Service != nil && d.Provider.Category != d.Service.Category {
			return failure.Validation("provider does not offer " + d.Service.Category) //nolint:wrapcheck
		}
	case StepDateTime:
		return d.checkSchedule(now)
	case StepAddress:
		if strings.TrimSpace(d.Address) == "" {
			return failure.Validation("enter a service address") //nolint:wrapcheck
		}
	case StepPricing:
		if d.PaymentMethod != "" && !IsPaymentMethod(d.PaymentMethod) {
			return failure.Validation("unknown payment method " + d.PaymentMethod) //nolint:wrapcheck
		}
	case StepConfirm:
		return failure.Validation("the confirm step can only be submitted") //nolint:wrapcheck
	default:
		return failure.Validation("unknown wizard step") //nolint:wrapcheck
	}

	return nil
}

func (d Draft) checkSchedule(now time.Time) error {
	if d.Date == "" || d.Time == "" {
		return failure.Validation("pick a date and a time slot") //nolint:wrapcheck
	}

	day, err := timezone.ParseDate(d.Date)
	if err != nil {
		return failure.Validation("date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	if timezone.IsBeforeDay(day, now) {
		return failure.Validation("date cannot be in the past") //nolint:wrapcheck
	}

	if d.Service == nil || !d.Service.IsSlotOpen(d.Time) {
		return failure.Validation("time slot " + d.Time + " is not available") //nolint:wrapcheck
	}

	switch d.Recurrence {
	case "", RecurrenceNone, RecurrenceWeekly, RecurrenceMonthly:
	default:
		return failure.Validation("recurrence must be none, weekly or monthly") //nolint:wrapcheck
	}

	return nil
}

// CheckComplete verifies that the draft sits on the confirm step and that every
// earlier step's requirements still hold.
func (d Draft) CheckComplete(now time.Time) error {
	if d.Step != StepConfirm {
		return failure.Validation("booking details are incomplete") //nolint:wrapcheck
	}

	for step := StepService; step < StepConfirm; step++ {
		if err := d.CheckStep(step, now); err != nil {
			return err
		}
	}

	return nil
}

// IsPaymentMethod reports whether method is one of the accepted payment methods.
func IsPaymentMethod(method string) bool {
	return slices.Contains([]string{PaymentMethodCard, PaymentMethodUPI, PaymentMethodCash, PaymentMethodWallet}, method)
}
