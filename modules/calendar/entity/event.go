package entity

import (
	"time"

	"plansync/core/entity"

	"github.com/google/uuid"
)

// Event is a single commitment on a user's calendar. Rows come from manual
// entry or from a provider sync; once stored they are treated uniformly.
type Event struct {
	entity.BaseEntity
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Location    *string   `db:"location" json:"location,omitempty"`
	Category    string    `db:"category" json:"category"`
	Source      *string   `db:"source" json:"source,omitempty"` // google, outlook, apple, manual
	ExternalID  *string   `db:"external_id" json:"external_id,omitempty"`
}

// BusyInterval is a read-only [start, end) snapshot of an existing commitment,
// consumed by the free-slot finder.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
