package repository

import (
	"context"
	"database/sql"
	"time"

	"plansync/core/database"
	"plansync/core/logger"
	"plansync/modules/collab/entity"

	"github.com/google/uuid"
)

type CollabRepository interface {
	// Events
	CreateEventWithOrganizer(ctx context.Context, event *entity.CollaborativeEvent) (*entity.CollaborativeEvent, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.CollaborativeEvent, error)
	GetEventsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CollaborativeEvent, error)
	UpdateResolution(ctx context.Context, eventID uuid.UUID, status string, finalStart, finalEnd *time.Time, finalLocation *string) (bool, error)
	ListExpiredPlanning(ctx context.Context, now time.Time) ([]entity.CollaborativeEvent, error)

	// Participants
	AddParticipant(ctx context.Context, p *entity.Participant) error
	GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*entity.Participant, error)
	GetParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.Participant, error)
	UpdateParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status string) error

	// Proposals and votes
	CreateTimeSlotProposal(ctx context.Context, p *entity.TimeSlotProposal) (*entity.TimeSlotProposal, error)
	GetTimeSlotProposals(ctx context.Context, eventID uuid.UUID) ([]entity.TimeSlotProposal, error)
	GetTimeSlotVotes(ctx context.Context, eventID uuid.UUID) ([]entity.TimeSlotVote, error)
	UpsertTimeSlotVote(ctx context.Context, vote *entity.TimeSlotVote) error
	CreateLocationProposal(ctx context.Context, p *entity.LocationProposal) (*entity.LocationProposal, error)
	GetLocationProposals(ctx context.Context, eventID uuid.UUID) ([]entity.LocationProposal, error)
	GetLocationVotes(ctx context.Context, eventID uuid.UUID) ([]entity.LocationVote, error)
	UpsertLocationVote(ctx context.Context, vote *entity.LocationVote) error
}

type collabRepository struct {
	db database.Database
}

func NewCollabRepository(db database.Database) CollabRepository {
	return &collabRepository{db: db}
}

// ===================== Events =====================

// CreateEventWithOrganizer inserts the event and its organizer row in one
// transaction so an event can never exist without exactly one organizer.
func (r *collabRepository) CreateEventWithOrganizer(ctx context.Context, event *entity.CollaborativeEvent) (*entity.CollaborativeEvent, error) {
	tx, err := r.db.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("CollabRepository:CreateEventWithOrganizer:Begin", err)
		return nil, err
	}
	defer tx.Rollback()

	eventQuery := `
		INSERT INTO collaborative_events (creator_id, title, description, status, voting_deadline)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(
		ctx, eventQuery,
		event.CreatorID, event.Title, event.Description, entity.StatusPlanning, event.VotingDeadline,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		logger.Error("CollabRepository:CreateEventWithOrganizer:InsertEvent", err)
		return nil, err
	}
	event.Status = entity.StatusPlanning

	participantQuery := `
		INSERT INTO collaborative_event_participants (event_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.ExecContext(ctx, participantQuery, event.ID, event.CreatorID, entity.RoleOrganizer, entity.ParticipantAccepted); err != nil {
		logger.Error("CollabRepository:CreateEventWithOrganizer:InsertOrganizer", err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("CollabRepository:CreateEventWithOrganizer:Commit", err)
		return nil, err
	}
	return event, nil
}

func (r *collabRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.CollaborativeEvent, error) {
	query := `
		SELECT id, creator_id, title, description, status, voting_deadline,
		       final_start_time, final_end_time, final_location, created_at, updated_at
		FROM collaborative_events
		WHERE id = $1
	`

	var event entity.CollaborativeEvent
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CollabRepository:GetEventByID", err)
		return nil, err
	}
	return &event, nil
}

func (r *collabRepository) GetEventsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CollaborativeEvent, error) {
	query := `
		SELECT e.id, e.creator_id, e.title, e.description, e.status, e.voting_deadline,
		       e.final_start_time, e.final_end_time, e.final_location, e.created_at, e.updated_at
		FROM collaborative_events e
		JOIN collaborative_event_participants p ON p.event_id = e.id
		WHERE p.user_id = $1
		ORDER BY e.created_at DESC
	`

	var events []entity.CollaborativeEvent
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		logger.Error("CollabRepository:GetEventsByUserID", err)
		return nil, err
	}
	return events, nil
}

// UpdateResolution writes the resolved outcome. The status guard makes the
// write a no-op when another process already finalized the event, so exactly
// one resolution wins.
func (r *collabRepository) UpdateResolution(ctx context.Context, eventID uuid.UUID, status string, finalStart, finalEnd *time.Time, finalLocation *string) (bool, error) {
	query := `
		UPDATE collaborative_events
		SET status = $2, final_start_time = $3, final_end_time = $4, final_location = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'planning'
	`

	result, err := r.db.SQLx().ExecContext(ctx, query, eventID, status, finalStart, finalEnd, finalLocation)
	if err != nil {
		logger.Error("CollabRepository:UpdateResolution", err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *collabRepository) ListExpiredPlanning(ctx context.Context, now time.Time) ([]entity.CollaborativeEvent, error) {
	query := `
		SELECT id, creator_id, title, description, status, voting_deadline,
		       final_start_time, final_end_time, final_location, created_at, updated_at
		FROM collaborative_events
		WHERE status = 'planning' AND voting_deadline <= $1
		ORDER BY voting_deadline ASC
	`

	var events []entity.CollaborativeEvent
	if err := r.db.SelectContext(ctx, &events, query, now); err != nil {
		logger.Error("CollabRepository:ListExpiredPlanning", err)
		return nil, err
	}
	return events, nil
}

// ===================== Participants =====================

func (r *collabRepository) AddParticipant(ctx context.Context, p *entity.Participant) error {
	query := `
		INSERT INTO collaborative_event_participants (event_id, user_id, role, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	if err := r.db.ExecContext(ctx, query, p.EventID, p.UserID, p.Role, p.Status); err != nil {
		logger.Error("CollabRepository:AddParticipant", err)
		return err
	}
	return nil
}

func (r *collabRepository) GetParticipant(ctx context.Context, eventID, userID uuid.UUID) (*entity.Participant, error) {
	query := `
		SELECT id, event_id, user_id, role, status, created_at, updated_at
		FROM collaborative_event_participants
		WHERE event_id = $1 AND user_id = $2
	`

	var p entity.Participant
	err := r.db.GetContext(ctx, &p, query, eventID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CollabRepository:GetParticipant", err)
		return nil, err
	}
	return &p, nil
}

func (r *collabRepository) GetParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.Participant, error) {
	query := `
		SELECT id, event_id, user_id, role, status, created_at, updated_at
		FROM collaborative_event_participants
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	var participants []entity.Participant
	if err := r.db.SelectContext(ctx, &participants, query, eventID); err != nil {
		logger.Error("CollabRepository:GetParticipants", err)
		return nil, err
	}
	return participants, nil
}

func (r *collabRepository) UpdateParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status string) error {
	query := `
		UPDATE collaborative_event_participants
		SET status = $3, updated_at = NOW()
		WHERE event_id = $1 AND user_id = $2
	`
	if err := r.db.ExecContext(ctx, query, eventID, userID, status); err != nil {
		logger.Error("CollabRepository:UpdateParticipantStatus", err)
		return err
	}
	return nil
}

// ===================== Time slot proposals =====================

func (r *collabRepository) CreateTimeSlotProposal(ctx context.Context, p *entity.TimeSlotProposal) (*entity.TimeSlotProposal, error) {
	query := `
		INSERT INTO time_slot_proposals (event_id, proposed_by, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, p.EventID, p.ProposedBy, p.StartTime, p.EndTime).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.Error("CollabRepository:CreateTimeSlotProposal", err)
		return nil, err
	}
	return p, nil
}

func (r *collabRepository) GetTimeSlotProposals(ctx context.Context, eventID uuid.UUID) ([]entity.TimeSlotProposal, error) {
	query := `
		SELECT id, event_id, proposed_by, start_time, end_time, created_at, updated_at
		FROM time_slot_proposals
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	var proposals []entity.TimeSlotProposal
	if err := r.db.SelectContext(ctx, &proposals, query, eventID); err != nil {
		logger.Error("CollabRepository:GetTimeSlotProposals", err)
		return nil, err
	}
	return proposals, nil
}

func (r *collabRepository) GetTimeSlotVotes(ctx context.Context, eventID uuid.UUID) ([]entity.TimeSlotVote, error) {
	query := `
		SELECT v.id, v.time_slot_id, v.user_id, v.preference, v.created_at, v.updated_at
		FROM time_slot_votes v
		JOIN time_slot_proposals p ON p.id = v.time_slot_id
		WHERE p.event_id = $1
	`

	var votes []entity.TimeSlotVote
	if err := r.db.SelectContext(ctx, &votes, query, eventID); err != nil {
		logger.Error("CollabRepository:GetTimeSlotVotes", err)
		return nil, err
	}
	return votes, nil
}

// UpsertTimeSlotVote enforces one vote per (proposal, user); a repeat vote
// replaces the earlier preference instead of counting twice.
func (r *collabRepository) UpsertTimeSlotVote(ctx context.Context, vote *entity.TimeSlotVote) error {
	query := `
		INSERT INTO time_slot_votes (time_slot_id, user_id, preference)
		VALUES ($1, $2, $3)
		ON CONFLICT (time_slot_id, user_id) DO UPDATE
		SET preference = $3, updated_at = NOW()
	`
	if err := r.db.ExecContext(ctx, query, vote.TimeSlotID, vote.UserID, vote.Preference); err != nil {
		logger.Error("CollabRepository:UpsertTimeSlotVote", err)
		return err
	}
	return nil
}

// ===================== Location proposals =====================

func (r *collabRepository) CreateLocationProposal(ctx context.Context, p *entity.LocationProposal) (*entity.LocationProposal, error) {
	query := `
		INSERT INTO location_proposals (event_id, proposed_by, name, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, p.EventID, p.ProposedBy, p.Name, p.Address).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.Error("CollabRepository:CreateLocationProposal", err)
		return nil, err
	}
	return p, nil
}

func (r *collabRepository) GetLocationProposals(ctx context.Context, eventID uuid.UUID) ([]entity.LocationProposal, error) {
	query := `
		SELECT id, event_id, proposed_by, name, address, created_at, updated_at
		FROM location_proposals
		WHERE event_id = $1
		ORDER BY created_at ASC
	`

	var proposals []entity.LocationProposal
	if err := r.db.SelectContext(ctx, &proposals, query, eventID); err != nil {
		logger.Error("CollabRepository:GetLocationProposals", err)
		return nil, err
	}
	return proposals, nil
}

func (r *collabRepository) GetLocationVotes(ctx context.Context, eventID uuid.UUID) ([]entity.LocationVote, error) {
	query := `
		SELECT v.id, v.location_id, v.user_id, v.preference, v.created_at, v.updated_at
		FROM location_votes v
		JOIN location_proposals p ON p.id = v.location_id
		WHERE p.event_id = $1
	`

	var votes []entity.LocationVote
	if err := r.db.SelectContext(ctx, &votes, query, eventID); err != nil {
		logger.Error("CollabRepository:GetLocationVotes", err)
		return nil, err
	}
	return votes, nil
}

func (r *collabRepository) UpsertLocationVote(ctx context.Context, vote *entity.LocationVote) error {
	query := `
		INSERT INTO location_votes (location_id, user_id, preference)
		VALUES ($1, $2, $3)
		ON CONFLICT (location_id, user_id) DO UPDATE
		SET preference = $3, updated_at = NOW()
	`
	if err := r.db.ExecContext(ctx, query, vote.LocationID, vote.UserID, vote.Preference); err != nil {
		logger.Error("CollabRepository:UpsertLocationVote", err)
		return err
	}
	return nil
}
