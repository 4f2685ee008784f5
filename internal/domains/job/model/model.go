package model

import "slices"

const EntityName = "job inbox"

// Inbox is one provider's queue of booking ids waiting for accept or reject,
// oldest first.
type Inbox struct {
	ProviderID string   `json:"provider_id"`
	BookingIDs []string `json:"booking_ids"`
}

func (i Inbox) GetID() string {
	return i.ProviderID
}

// Push appends id unless it is already queued. It reports whether the inbox changed.
func (i *Inbox) Push(id string) bool {
	if slices.Contains(i.BookingIDs, id) {
		return false
	}

	i.BookingIDs = append(i.BookingIDs, id)

	return true
}

// Pull removes id. It reports whether the inbox changed.
func (i *Inbox) Pull(id string) bool {
	idx := slices.Index(i.BookingIDs, id)
	if idx < 0 {
		return false
	}

	i.BookingIDs = slices.Delete(i.BookingIDs, idx, idx+1)

	return true
}
