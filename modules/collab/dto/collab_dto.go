package dto

import (
	"time"

	"plansync/modules/collab/entity"

	"github.com/google/uuid"
)

type CreateCollabEventRequest struct {
	Title          string    `json:"title" validate:"required,min=1,max=200"`
	Description    string    `json:"description"`
	VotingDeadline time.Time `json:"voting_deadline" validate:"required"`
}

type InviteRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1,dive,required"`
}

type RespondRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

type ProposeTimeSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required"`
}

type ProposeLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
}

type VoteRequest struct {
	Preference int `json:"preference" validate:"required,min=1,max=5"`
}

type CollabEventResponse struct {
	ID             uuid.UUID  `json:"id"`
	CreatorID      uuid.UUID  `json:"creator_id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	Status         string     `json:"status"`
	VotingDeadline time.Time  `json:"voting_deadline"`
	FinalStartTime *time.Time `json:"final_start_time,omitempty"`
	FinalEndTime   *time.Time `json:"final_end_time,omitempty"`
	FinalLocation  *string    `json:"final_location,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ParticipantResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Status string    `json:"status"`
}

type TimeSlotProposalResponse struct {
	ID         uuid.UUID `json:"id"`
	ProposedBy uuid.UUID `json:"proposed_by"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Score      int       `json:"score"`
	VoterCount int       `json:"voter_count"`
}

type LocationProposalResponse struct {
	ID         uuid.UUID `json:"id"`
	ProposedBy uuid.UUID `json:"proposed_by"`
	Name       string    `json:"name"`
	Address    *string   `json:"address,omitempty"`
	Score      int       `json:"score"`
	VoterCount int       `json:"voter_count"`
}

type CollabEventDetailResponse struct {
	CollabEventResponse
	Participants      []ParticipantResponse      `json:"participants"`
	TimeSlotProposals []TimeSlotProposalResponse `json:"time_slot_proposals"`
	LocationProposals []LocationProposalResponse `json:"location_proposals"`
}

type ExportResponse struct {
	URL string `json:"url"`
}

func ToCollabEventResponse(e *entity.CollaborativeEvent) CollabEventResponse {
	return CollabEventResponse{
		ID:             e.ID,
		CreatorID:      e.CreatorID,
		Title:          e.Title,
		Description:    e.Description,
		Status:         e.Status,
		VotingDeadline: e.VotingDeadline,
		FinalStartTime: e.FinalStartTime,
		FinalEndTime:   e.FinalEndTime,
		FinalLocation:  e.FinalLocation,
		CreatedAt:      e.CreatedAt,
	}
}
