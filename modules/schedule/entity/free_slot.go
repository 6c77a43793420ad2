package entity

import "time"

// FreeSlot is a computed open window on a day. It is derived on demand and
// never persisted.
type FreeSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}
