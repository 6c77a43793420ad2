package entity

import (
	"time"

	"plansync/core/entity"

	"github.com/google/uuid"
)

// TimeSlotProposal is a candidate start/end time submitted by a participant.
type TimeSlotProposal struct {
	entity.BaseEntity
	EventID    uuid.UUID `json:"event_id" db:"event_id"`
	ProposedBy uuid.UUID `json:"proposed_by" db:"proposed_by"`
	StartTime  time.Time `json:"start_time" db:"start_time"`
	EndTime    time.Time `json:"end_time" db:"end_time"`
}

// TimeSlotVote is one participant's preference for one proposal. At most one
// vote exists per (proposal, user) pair; re-voting replaces the prior vote.
type TimeSlotVote struct {
	entity.BaseEntity
	TimeSlotID uuid.UUID `json:"time_slot_id" db:"time_slot_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Preference int       `json:"preference" db:"preference"`
}

// LocationProposal is a candidate place, structurally the location twin of
// TimeSlotProposal.
type LocationProposal struct {
	entity.BaseEntity
	EventID    uuid.UUID `json:"event_id" db:"event_id"`
	ProposedBy uuid.UUID `json:"proposed_by" db:"proposed_by"`
	Name       string    `json:"name" db:"name"`
	Address    *string   `json:"address" db:"address"`
}

type LocationVote struct {
	entity.BaseEntity
	LocationID uuid.UUID `json:"location_id" db:"location_id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Preference int       `json:"preference" db:"preference"`
}
