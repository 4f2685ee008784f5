package model

import (
	"lendahand/shared/failure"
	"slices"
)

type Status string

const (
	StatusRequested  Status = "Requested"
	StatusConfirmed  Status = "Confirmed"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// MarkerRescheduled tags the history entry written by a reschedule.
const MarkerRescheduled = "Rescheduled"

// IsTerminal reports whether no further status change is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsUpcoming reports whether the booking still lies ahead of the customer.
func (s Status) IsUpcoming() bool {
	return s == StatusRequested || s == StatusConfirmed || s == StatusInProgress
}

// Action is a lifecycle operation: the statuses it may start from, the status
// it ends in and the history marker it leaves, if any.
type Action struct {
	Name   string
	From   []Status
	Target Status
	Marker string
}

var (
	ActionCancel = Action{
		Name:   "cancel",
		From:   []Status{StatusRequested, StatusConfirmed, StatusInProgress},
		Target: StatusCancelled,
	}
	ActionReschedule = Action{
		Name:   "reschedule",
		From:   []Status{StatusRequested, StatusConfirmed},
		Target: StatusRequested,
		Marker: MarkerRescheduled,
	}
	ActionAccept = Action{
		Name:   "accept",
		From:   []Status{StatusRequested},
		Target: StatusConfirmed,
	}
	ActionReject = Action{
		Name:   "reject",
		From:   []Status{StatusRequested},
		Target: StatusCancelled,
	}
	ActionStart = Action{
		Name:   "start",
		From:   []Status{StatusConfirmed},
		Target: StatusInProgress,
	}
	ActionComplete = Action{
		Name:   "complete",
		From:   []Status{StatusInProgress},
		Target: StatusCompleted,
	}
)

// Check returns an invalid-transition failure naming current and the target
// status when the action may not start from current.
func (a Action) Check(current Status) error {
	if slices.Contains(a.From, current) {
		return nil
	}

	target := string(a.Target)
	if a.Marker != "" {
		target = a.Marker
	}

	return failure.InvalidTransition(string(current), target) //nolint:wrapcheck
}

// CanTransition reports whether the status graph has an edge from -> to.
func CanTransition(from, to Status) bool {
	for _, action := range []Action{ActionCancel, ActionReschedule, ActionAccept, ActionReject, ActionStart, ActionComplete} {
		if action.Target == to && slices.Contains(action.From, from) {
			return true
		}
	}

	return false
}
