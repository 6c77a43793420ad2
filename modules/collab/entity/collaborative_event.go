package entity

import (
	"time"

	"plansync/core/entity"

	"github.com/google/uuid"
)

const (
	StatusPlanning  = "planning"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	RoleOrganizer   = "organizer"
	RoleParticipant = "participant"
)

const (
	ParticipantPending  = "pending"
	ParticipantAccepted = "accepted"
	ParticipantDeclined = "declined"
)

// CollaborativeEvent is a plan under multi-party negotiation. The final
// fields stay null until resolution commits a winner.
type CollaborativeEvent struct {
	entity.BaseEntity
	CreatorID      uuid.UUID  `json:"creator_id" db:"creator_id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description" db:"description"`
	Status         string     `json:"status" db:"status"`
	VotingDeadline time.Time  `json:"voting_deadline" db:"voting_deadline"`
	FinalStartTime *time.Time `json:"final_start_time" db:"final_start_time"`
	FinalEndTime   *time.Time `json:"final_end_time" db:"final_end_time"`
	FinalLocation  *string    `json:"final_location" db:"final_location"`
}

type Participant struct {
	entity.BaseEntity
	EventID uuid.UUID `json:"event_id" db:"event_id"`
	UserID  uuid.UUID `json:"user_id" db:"user_id"`
	Role    string    `json:"role" db:"role"`
	Status  string    `json:"status" db:"status"`
}
