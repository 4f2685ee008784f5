package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendahand/internal/domains/booking/model"
	catalogModel "lendahand/internal/domains/catalog/model"
	"lendahand/shared/failure"
)

var today = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func cleaning() *catalogModel.Service {
	svc := catalogModel.SeedServices()[0]

	return &svc
}

func cleaner() *catalogModel.Provider {
	return &catalogModel.Provider{ID: "p1", Name: "Sparkle Clean Co.", Category: catalogModel.CategoryCleaning}
}

func completeDraft() model.Draft {
	return model.Draft{
		Step:          model.StepConfirm,
		Furthest:      model.StepConfirm,
		Service:       cleaning(),
		Provider:      cleaner(),
		Date:          "2026-03-12",
		Time:          "10:00 AM",
		Address:       "12 MG Road",
		PaymentMethod: model.PaymentMethodCard,
	}
}

func TestAction_Check(t *testing.T) {
	tests := []struct {
		name    string
		action  model.Action
		current model.Status
		allowed bool
	}{
		{name: "accept requested", action: model.ActionAccept, current: model.StatusRequested, allowed: true},
		{name: "accept completed", action: model.ActionAccept, current: model.StatusCompleted},
		{name: "accept cancelled", action: model.ActionAccept, current: model.StatusCancelled},
		{name: "reject confirmed", action: model.ActionReject, current: model.StatusConfirmed},
		{name: "cancel in progress", action: model.ActionCancel, current: model.StatusInProgress, allowed: true},
		{name: "cancel completed", action: model.ActionCancel, current: model.StatusCompleted},
		{name: "reschedule confirmed", action: model.ActionReschedule, current: model.StatusConfirmed, allowed: true},
		{name: "reschedule in progress", action: model.ActionReschedule, current: model.StatusInProgress},
		{name: "start confirmed", action: model.ActionStart, current: model.StatusConfirmed, allowed: true},
		{name: "start requested", action: model.ActionStart, current: model.StatusRequested},
		{name: "complete in progress", action: model.ActionComplete, current: model.StatusInProgress, allowed: true},
		{name: "complete confirmed", action: model.ActionComplete, current: model.StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.action.Check(tt.current)
			if tt.allowed {
				assert.NoError(t, err)

				return
			}

			var fail *failure.Failure
			require.ErrorAs(t, err, &fail)
			assert.Equal(t, failure.KindInvalidTransition, fail.Kind)
			assert.Equal(t, string(tt.current), fail.From)
			assert.NotEmpty(t, fail.To)
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, model.CanTransition(model.StatusRequested, model.StatusConfirmed))
	assert.True(t, model.CanTransition(model.StatusConfirmed, model.StatusRequested))
	assert.True(t, model.CanTransition(model.StatusInProgress, model.StatusCompleted))
	assert.False(t, model.CanTransition(model.StatusCompleted, model.StatusCancelled))
	assert.False(t, model.CanTransition(model.StatusCancelled, model.StatusRequested))
	assert.False(t, model.CanTransition(model.StatusRequested, model.StatusCompleted))

	assert.True(t, model.StatusCancelled.IsTerminal())
	assert.False(t, model.StatusInProgress.IsTerminal())
	assert.True(t, model.StatusInProgress.IsUpcoming())
}

func TestBooking_TransitionAndHistory(t *testing.T) {
	b := model.Booking{ID: "b1"}
	assert.Error(t, b.CheckHistory())

	b.Transition(model.StatusRequested, "", today)
	b.Transition(model.StatusConfirmed, "", today.Add(time.Minute))
	b.Transition(model.StatusRequested, model.MarkerRescheduled, today.Add(2*time.Minute))

	require.NoError(t, b.CheckHistory())
	assert.Len(t, b.StatusHistory, 3)
	assert.Equal(t, model.MarkerRescheduled, b.StatusHistory[2].Marker)

	b.Status = model.StatusCompleted
	assert.Error(t, b.CheckHistory())

	clone := b.Clone()
	clone.StatusHistory[0].Status = model.StatusCancelled
	assert.Equal(t, model.StatusRequested, b.StatusHistory[0].Status)
}

func TestDraft_Merge(t *testing.T) {
	draft := model.Draft{Step: model.StepDateTime, Service: cleaning(), Provider: cleaner(), Date: "2026-03-12", Time: "10:00 AM"}

	merged := draft.Merge(model.StepData{Address: "12 MG Road"})

	assert.Equal(t, "2026-03-12", merged.Date, "fields from other steps survive")
	assert.Equal(t, "12 MG Road", merged.Address)
	assert.Empty(t, draft.Address, "merge does not modify the receiver")

	provider := catalogModel.Provider{ID: "p6", Category: catalogModel.CategoryCleaning}
	merged = merged.Merge(model.StepData{Provider: &provider})
	provider.ID = "changed"
	assert.Equal(t, "p6", merged.Provider.ID)
}

func TestDraft_CheckStep(t *testing.T) {
	plumber := &catalogModel.Provider{ID: "p2", Category: catalogModel.CategoryPlumbing}

	tests := []struct {
		name    string
		step    int
		mutate  func(d *model.Draft)
		wantErr bool
	}{
		{name: "service present", step: model.StepService, mutate: func(*model.Draft) {}},
		{name: "service missing", step: model.StepService, mutate: func(d *model.Draft) { d.Service = nil }, wantErr: true},
		{name: "provider missing", step: model.StepProvider, mutate: func(d *model.Draft) { d.Provider = nil }, wantErr: true},
		{name: "provider wrong category", step: model.StepProvider, mutate: func(d *model.Draft) { d.Provider = plumber }, wantErr: true},
		{name: "date missing", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Date = "" }, wantErr: true},
		{name: "time missing", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Time = "" }, wantErr: true},
		{name: "date in the past", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Date = "2026-03-09" }, wantErr: true},
		{name: "today is allowed", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Date = "2026-03-10" }},
		{name: "malformed date", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Date = "12/03/2026" }, wantErr: true},
		{name: "busy slot", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Time = "11:00 AM" }, wantErr: true},
		{name: "slot not offered", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Time = "11:30 PM" }, wantErr: true},
		{name: "bad recurrence", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Recurrence = "daily" }, wantErr: true},
		{name: "weekly recurrence", step: model.StepDateTime, mutate: func(d *model.Draft) { d.Recurrence = model.RecurrenceWeekly }},
		{name: "blank address", step: model.StepAddress, mutate: func(d *model.Draft) { d.Address = "   " }, wantErr: true},
		{name: "no payment method yet", step: model.StepPricing, mutate: func(d *model.Draft) { d.PaymentMethod = "" }},
		{name: "unknown payment method", step: model.StepPricing, mutate: func(d *model.Draft) { d.PaymentMethod = "Bitcoin" }, wantErr: true},
		{name: "confirm cannot advance", step: model.StepConfirm, mutate: func(*model.Draft) {}, wantErr: true},
		{name: "unknown step", step: 9, mutate: func(*model.Draft) {}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			tt.mutate(&draft)

			err := draft.CheckStep(tt.step, today)
			if tt.wantErr {
				assert.True(t, failure.IsKind(err, failure.KindValidation), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDraft_CheckComplete(t *testing.T) {
	assert.NoError(t, completeDraft().CheckComplete(today))

	early := completeDraft()
	early.Step = model.StepPricing
	assert.Error(t, early.CheckComplete(today))

	stale := completeDraft()
	assert.Error(t, stale.CheckComplete(today.AddDate(0, 0, 5)), "date has since passed")
}
