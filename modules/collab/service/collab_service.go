package service

import (
	"context"
	"fmt"
	"time"

	"plansync/core/errors"
	"plansync/core/logger"
	"plansync/core/storage"
	"plansync/modules/collab/dto"
	"plansync/modules/collab/entity"
	"plansync/modules/collab/repository"

	"github.com/google/uuid"
)

// Notifier delivers in-app notifications to participants. Satisfied by the
// notification module's service.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]any) error
}

type CollabServiceInterface interface {
	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateCollabEventRequest) (*dto.CollabEventResponse, *errors.AppError)
	GetMyEvents(ctx context.Context, userID uuid.UUID) ([]dto.CollabEventResponse, *errors.AppError)
	GetEventDetail(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (*dto.CollabEventDetailResponse, *errors.AppError)
	Invite(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.InviteRequest) *errors.AppError
	Respond(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.RespondRequest) *errors.AppError

	ProposeTimeSlot(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.ProposeTimeSlotRequest) (*dto.TimeSlotProposalResponse, *errors.AppError)
	ProposeLocation(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.ProposeLocationRequest) (*dto.LocationProposalResponse, *errors.AppError)
	VoteTimeSlot(ctx context.Context, userID uuid.UUID, eventID, slotID uuid.UUID, req *dto.VoteRequest) *errors.AppError
	VoteLocation(ctx context.Context, userID uuid.UUID, eventID, locationID uuid.UUID, req *dto.VoteRequest) *errors.AppError

	Finalize(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (*dto.CollabEventResponse, *errors.AppError)
	FinalizeExpired(ctx context.Context, now time.Time) (int, error)
	ExportICS(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (*dto.ExportResponse, *errors.AppError)
}

type collabService struct {
	repo     repository.CollabRepository
	notifier Notifier
	store    storage.ObjectStore
}

func NewCollabService(repo repository.CollabRepository, notifier Notifier, store storage.ObjectStore) CollabServiceInterface {
	return &collabService{
		repo:     repo,
		notifier: notifier,
		store:    store,
	}
}

func (s *collabService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateCollabEventRequest) (*dto.CollabEventResponse, *errors.AppError) {
	if !req.VotingDeadline.After(time.Now()) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "voting_deadline must be in the future", nil)
	}

	event := &entity.CollaborativeEvent{
		CreatorID:      userID,
		Title:          req.Title,
		VotingDeadline: req.VotingDeadline,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}

	created, err := s.repo.CreateEventWithOrganizer(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create collaborative event", err)
	}

	resp := dto.ToCollabEventResponse(created)
	return &resp, nil
}

func (s *collabService) GetMyEvents(ctx context.Context, userID uuid.UUID) ([]dto.CollabEventResponse, *errors.AppError) {
	events, err := s.repo.GetEventsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get collaborative events", err)
	}

	result := make([]dto.CollabEventResponse, 0, len(events))
	for i := range events {
		result = append(result, dto.ToCollabEventResponse(&events[i]))
	}
	return result, nil
}

// requireParticipant loads the event and verifies the user belongs to it.
func (s *collabService) requireParticipant(ctx context.Context, userID, eventID uuid.UUID) (*entity.CollaborativeEvent, *entity.Participant, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to get event", err)
	}
	if event == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "collaborative event not found", nil)
	}

	participant, err := s.repo.GetParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrInternalServer, "failed to get participant", err)
	}
	if participant == nil {
		return nil, nil, errors.NewAppError(errors.ErrForbidden, "not a participant of this event", nil)
	}
	return event, participant, nil
}

func (s *collabService) GetEventDetail(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (*dto.CollabEventDetailResponse, *errors.AppError) {
	event, _, appErr := s.requireParticipant(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}

	participants, err := s.repo.GetParticipants(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get participants", err)
	}
	proposals, err := s.repo.GetTimeSlotProposals(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get proposals", err)
	}
	votes, err := s.repo.GetTimeSlotVotes(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get votes", err)
	}
	locations, err := s.repo.GetLocationProposals(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get location proposals", err)
	}
	locationVotes, err := s.repo.GetLocationVotes(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get location votes", err)
	}

	detail := &dto.CollabEventDetailResponse{
		CollabEventResponse: dto.ToCollabEventResponse(event),
		Participants:        make([]dto.ParticipantResponse, 0, len(participants)),
		TimeSlotProposals:   make([]dto.TimeSlotProposalResponse, 0, len(proposals)),
		LocationProposals:   make([]dto.LocationProposalResponse, 0, len(locations)),
	}

	for _, p := range participants {
		detail.Participants = append(detail.Participants, dto.ParticipantResponse{
			UserID: p.UserID,
			Role:   p.Role,
			Status: p.Status,
		})
	}

	slotScores := make(map[uuid.UUID]int)
	slotVoters := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, v := range votes {
		slotScores[v.TimeSlotID] += v.Preference
		if slotVoters[v.TimeSlotID] == nil {
			slotVoters[v.TimeSlotID] = make(map[uuid.UUID]struct{})
		}
		slotVoters[v.TimeSlotID][v.UserID] = struct{}{}
	}
	for _, p := range proposals {
		detail.TimeSlotProposals = append(detail.TimeSlotProposals, dto.TimeSlotProposalResponse{
			ID:         p.ID,
			ProposedBy: p.ProposedBy,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Score:      slotScores[p.ID],
			VoterCount: len(slotVoters[p.ID]),
		})
	}

	locScores := make(map[uuid.UUID]int)
	locVoters := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, v := range locationVotes {
		locScores[v.LocationID] += v.Preference
		if locVoters[v.LocationID] == nil {
			locVoters[v.LocationID] = make(map[uuid.UUID]struct{})
		}
		locVoters[v.LocationID][v.UserID] = struct{}{}
	}
	for _, p := range locations {
		detail.LocationProposals = append(detail.LocationProposals, dto.LocationProposalResponse{
			ID:         p.ID,
			ProposedBy: p.ProposedBy,
			Name:       p.Name,
			Address:    p.Address,
			Score:      locScores[p.ID],
			VoterCount: len(locVoters[p.ID]),
		})
	}

	return detail, nil
}

func (s *collabService) Invite(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.InviteRequest) *errors.AppError {
	event, participant, appErr := s.requireParticipant(ctx, userID, eventID)
	if appErr != nil {
		return appErr
	}
	if participant.Role != entity.RoleOrganizer {
		return errors.NewAppError(errors.ErrForbidden, "only the organizer can invite", nil)
	}
	if event.Status != entity.StatusPlanning {
		return errors.NewAppError(errors.ErrInvalidInput, "event is no longer in planning", nil)
	}

	for _, inviteeID := range req.UserIDs {
		if inviteeID == userID {
			continue
		}
		err := s.repo.AddParticipant(ctx, &entity.Participant{
			EventID: eventID,
			UserID:  inviteeID,
			Role:    entity.RoleParticipant,
			Status:  entity.ParticipantPending,
		})
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "failed to add participant", err)
		}

		if err := s.notifier.Notify(ctx, inviteeID, "invite", "New event invitation",
			fmt.Sprintf("You have been invited to %q", event.Title),
			map[string]any{"event_id": eventID.String()},
		); err != nil {
			logger.Warn("CollabService:Invite:Notify:Error", "user_id", inviteeID, "error", err)
		}
	}
	return nil
}

func (s *collabService) Respond(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.RespondRequest) *errors.AppError {
	_, participant, appErr := s.requireParticipant(ctx, userID, eventID)
	if appErr != nil {
		return appErr
	}
	if participant.Role == entity.RoleOrganizer {
		return errors.NewAppError(errors.ErrInvalidInput, "organizer cannot decline their own event", nil)
	}

	if err := s.repo.UpdateParticipantStatus(ctx, eventID, userID, req.Status); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to update participation", err)
	}
	return nil
}

// requirePlanningParticipant is the shared guard for proposing and voting:
// the event must still accept input and the caller must have accepted the
// invitation.
func (s *collabService) requirePlanningParticipant(ctx context.Context, userID, eventID uuid.UUID) (*entity.CollaborativeEvent, *errors.AppError) {
	event, participant, appErr := s.requireParticipant(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if event.Status != entity.StatusPlanning {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event is no longer in planning", nil)
	}
	if time.Now().After(event.VotingDeadline) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "voting deadline has passed", nil)
	}
	if participant.Status != entity.ParticipantAccepted {
		return nil, errors.NewAppError(errors.ErrForbidden, "invitation not accepted", nil)
	}
	return event, nil
}

func (s *collabService) ProposeTimeSlot(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.ProposeTimeSlotRequest) (*dto.TimeSlotProposalResponse, *errors.AppError) {
	if _, appErr := s.requirePlanningParticipant(ctx, userID, eventID); appErr != nil {
		return nil, appErr
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	proposal := &entity.TimeSlotProposal{
		EventID:    eventID,
		ProposedBy: userID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
	created, err := s.repo.CreateTimeSlotProposal(ctx, proposal)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create proposal", err)
	}

	return &dto.TimeSlotProposalResponse{
		ID:         created.ID,
		ProposedBy: created.ProposedBy,
		StartTime:  created.StartTime,
		EndTime:    created.EndTime,
	}, nil
}

func (s *collabService) ProposeLocation(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.ProposeLocationRequest) (*dto.LocationProposalResponse, *errors.AppError) {
	if _, appErr := s.requirePlanningParticipant(ctx, userID, eventID); appErr != nil {
		return nil, appErr
	}

	proposal := &entity.LocationProposal{
		EventID:    eventID,
		ProposedBy: userID,
		Name:       req.Name,
	}
	if req.Address != "" {
		proposal.Address = &req.Address
	}
	created, err := s.repo.CreateLocationProposal(ctx, proposal)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create location proposal", err)
	}

	return &dto.LocationProposalResponse{
		ID:         created.ID,
		ProposedBy: created.ProposedBy,
		Name:       created.Name,
		Address:    created.Address,
	}, nil
}

func (s *collabService) VoteTimeSlot(ctx context.Context, userID uuid.UUID, eventID, slotID uuid.UUID, req *dto.VoteRequest) *errors.AppError {
	if _, appErr := s.requirePlanningParticipant(ctx, userID, eventID); appErr != nil {
		return appErr
	}

	proposals, err := s.repo.GetTimeSlotProposals(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get proposals", err)
	}
	if !containsSlot(proposals, slotID) {
		return errors.NewAppError(errors.ErrNotFound, "time slot proposal not found for this event", nil)
	}

	vote := &entity.TimeSlotVote{
		TimeSlotID: slotID,
		UserID:     userID,
		Preference: req.Preference,
	}
	if err := s.repo.UpsertTimeSlotVote(ctx, vote); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to record vote", err)
	}
	return nil
}

func (s *collabService) VoteLocation(ctx context.Context, userID uuid.UUID, eventID, locationID uuid.UUID, req *dto.VoteRequest) *errors.AppError {
	if _, appErr := s.requirePlanningParticipant(ctx, userID, eventID); appErr != nil {
		return appErr
	}

	proposals, err := s.repo.GetLocationProposals(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to get location proposals", err)
	}
	if !containsLocation(proposals, locationID) {
		return errors.NewAppError(errors.ErrNotFound, "location proposal not found for this event", nil)
	}

	vote := &entity.LocationVote{
		LocationID: locationID,
		UserID:     userID,
		Preference: req.Preference,
	}
	if err := s.repo.UpsertLocationVote(ctx, vote); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to record vote", err)
	}
	return nil
}

func containsSlot(proposals []entity.TimeSlotProposal, id uuid.UUID) bool {
	for _, p := range proposals {
		if p.ID == id {
			return true
		}
	}
	return false
}

func containsLocation(proposals []entity.LocationProposal, id uuid.UUID) bool {
	for _, p := range proposals {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Finalize lets the organizer close voting early and commit the outcome.
func (s *collabService) Finalize(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (*dto.CollabEventResponse, *errors.AppError) {
	event, participant, appErr := s.requireParticipant(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if participant.Role != entity.RoleOrganizer {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the organizer can finalize", nil)
	}
	if event.Status != entity.StatusPlanning {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "event already resolved", nil)
	}

	// Closing early with no votes at all would cancel a plan that just
	// needs more input, so tell the organizer instead. Deadline expiry
	// still cancels unvoted events.
	if time.Now().Before(event.VotingDeadline) {
		votes, err := s.repo.GetTimeSlotVotes(ctx, eventID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get votes", err)
		}
		locationVotes, err := s.repo.GetLocationVotes(ctx, eventID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get location votes", err)
		}
		if len(votes) == 0 && len(locationVotes) == 0 {
			return nil, errors.NewAppError(errors.ErrUnresolvable, "no proposal has received votes yet", nil)
		}
	}

	resolved, appErr := s.resolveAndPersist(ctx, event)
	if appErr != nil {
		return nil, appErr
	}

	resp := dto.ToCollabEventResponse(resolved)
	return &resp, nil
}

// FinalizeExpired resolves every planning event whose deadline has passed.
// Called from the background worker; returns the number of events resolved.
func (s *collabService) FinalizeExpired(ctx context.Context, now time.Time) (int, error) {
	events, err := s.repo.ListExpiredPlanning(ctx, now)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := range events {
		if _, appErr := s.resolveAndPersist(ctx, &events[i]); appErr != nil {
			logger.Error("CollabService:FinalizeExpired:Resolve:Error:", appErr)
			continue
		}
		resolved++
	}
	return resolved, nil
}

func (s *collabService) resolveAndPersist(ctx context.Context, event *entity.CollaborativeEvent) (*entity.CollaborativeEvent, *errors.AppError) {
	proposals, err := s.repo.GetTimeSlotProposals(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get proposals", err)
	}
	votes, err := s.repo.GetTimeSlotVotes(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get votes", err)
	}
	locations, err := s.repo.GetLocationProposals(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get location proposals", err)
	}
	locationVotes, err := s.repo.GetLocationVotes(ctx, event.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get location votes", err)
	}

	outcome, appErr := Resolve(event, proposals, votes, locations, locationVotes)
	if appErr != nil {
		return nil, appErr
	}

	var finalStart, finalEnd *time.Time
	var finalLocation *string
	if outcome.WinningSlot != nil {
		finalStart = &outcome.WinningSlot.StartTime
		finalEnd = &outcome.WinningSlot.EndTime
	}
	if outcome.WinningLocation != nil {
		finalLocation = &outcome.WinningLocation.Name
	}

	applied, err := s.repo.UpdateResolution(ctx, event.ID, outcome.Status, finalStart, finalEnd, finalLocation)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to persist resolution", err)
	}
	if !applied {
		// Another process finalized first; its outcome is authoritative.
		current, err := s.repo.GetEventByID(ctx, event.ID)
		if err != nil || current == nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to reload event", err)
		}
		return current, nil
	}

	event.Status = outcome.Status
	event.FinalStartTime = finalStart
	event.FinalEndTime = finalEnd
	event.FinalLocation = finalLocation

	s.notifyResolution(ctx, event)

	if outcome.Status == entity.StatusCancelled && outcome.WinningSlot == nil && len(proposals) > 0 {
		logger.Info("CollabService:resolveAndPersist:NoConsensus", "event_id", event.ID)
	}

	return event, nil
}

func (s *collabService) notifyResolution(ctx context.Context, event *entity.CollaborativeEvent) {
	participants, err := s.repo.GetParticipants(ctx, event.ID)
	if err != nil {
		logger.Warn("CollabService:notifyResolution:GetParticipants:Error", "error", err)
		return
	}

	title := "Event cancelled"
	message := fmt.Sprintf("%q could not be scheduled: no proposal received votes", event.Title)
	if event.Status == entity.StatusConfirmed {
		title = "Event confirmed"
		message = fmt.Sprintf("%q is confirmed for %s", event.Title, event.FinalStartTime.Format(time.RFC1123))
	}

	for _, p := range participants {
		if err := s.notifier.Notify(ctx, p.UserID, "resolution", title, message,
			map[string]any{"event_id": event.ID.String(), "status": event.Status},
		); err != nil {
			logger.Warn("CollabService:notifyResolution:Notify:Error", "user_id", p.UserID, "error", err)
		}
	}
}

// ExportICS uploads the confirmed event as an .ics file and returns a
// short-lived download link.
func (s *collabService) ExportICS(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) (*dto.ExportResponse, *errors.AppError) {
	event, _, appErr := s.requireParticipant(ctx, userID, eventID)
	if appErr != nil {
		return nil, appErr
	}
	if event.Status != entity.StatusConfirmed || event.FinalStartTime == nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "only confirmed events can be exported", nil)
	}
	if s.store == nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "object storage is not configured", nil)
	}

	content := buildICS(event, time.Now())
	key := fmt.Sprintf("exports/%s.ics", event.ID)
	if err := s.store.Upload(ctx, key, "text/calendar", []byte(content)); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to upload export", err)
	}

	url, err := s.store.PresignGet(ctx, key, 15*time.Minute)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to sign export link", err)
	}

	return &dto.ExportResponse{URL: url}, nil
}
