package service

import (
	"context"
	"fmt"
	"time"

	"plansync/core/config"
	"plansync/core/errors"
	"plansync/core/logger"
	"plansync/core/utils"
	authservice "plansync/modules/auth/service"
	scheduleentity "plansync/modules/schedule/entity"
	scheduleservice "plansync/modules/schedule/service"
	"plansync/modules/suggestion/dto"
	"plansync/modules/suggestion/entity"
	"plansync/modules/suggestion/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type SuggestionServiceInterface interface {
	Generate(ctx context.Context, userID uuid.UUID, req *dto.GenerateSuggestionsRequest) ([]dto.SuggestionResponse, *errors.AppError)
	GetMySuggestions(ctx context.Context, userID uuid.UUID) ([]dto.SuggestionResponse, *errors.AppError)
	Accept(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID) *errors.AppError
	Decline(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID) *errors.AppError
	Rate(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID, req *dto.RateSuggestionRequest) *errors.AppError
	Share(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID) (*dto.ShareResponse, *errors.AppError)
	GetShared(ctx context.Context, shareSlug string) (*dto.SuggestionResponse, *errors.AppError)
	SearchPlaces(ctx context.Context, req *dto.PlaceSearchRequest) ([]dto.PlaceResponse, *errors.AppError)
}

type suggestionService struct {
	repo            repository.SuggestionRepository
	scheduleService scheduleservice.ScheduleServiceInterface
	authService     authservice.AuthServiceInterface
	openAI          *openAIClient
	yelp            *yelpClient
}

func NewSuggestionService(
	repo repository.SuggestionRepository,
	scheduleService scheduleservice.ScheduleServiceInterface,
	authService authservice.AuthServiceInterface,
	cfg *config.Config,
) SuggestionServiceInterface {
	return &suggestionService{
		repo:            repo,
		scheduleService: scheduleService,
		authService:     authService,
		openAI:          newOpenAIClient(cfg.OpenAI),
		yelp:            newYelpClient(cfg.Yelp),
	}
}

// Generate derives the day's free slots, asks the model for one idea per
// slot, and persists whatever fits. Without an OpenAI key it falls back to
// the suggestions already stored for the user.
func (s *suggestionService) Generate(ctx context.Context, userID uuid.UUID, req *dto.GenerateSuggestionsRequest) ([]dto.SuggestionResponse, *errors.AppError) {
	if !s.openAI.enabled() {
		logger.Warn("SuggestionService:Generate:OpenAI key missing, returning stored suggestions")
		return s.GetMySuggestions(ctx, userID)
	}

	slots, appErr := s.scheduleService.GetFreeSlots(ctx, userID, req.Date, req.MinimumDuration)
	if appErr != nil {
		return nil, appErr
	}
	if len(slots) == 0 {
		return []dto.SuggestionResponse{}, nil
	}

	user, appErr := s.authService.GetUserByID(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	activities, err := s.openAI.GenerateActivities(ctx, slots, user.Preferences)
	if err != nil {
		logger.Error("SuggestionService:Generate:OpenAI:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate suggestions", err)
	}

	result := make([]dto.SuggestionResponse, 0, len(activities))
	for _, a := range activities {
		slot, ok := slotAt(slots, a.SlotIndex)
		if !ok || a.Title == "" {
			continue
		}
		if a.DurationMinutes > slot.DurationMinutes {
			// The model occasionally ignores the slot length; drop instead of
			// scheduling an activity the user has no time for.
			continue
		}

		endTime := slot.End
		duration := slot.DurationMinutes
		if a.DurationMinutes > 0 {
			endTime = slot.Start.Add(time.Duration(a.DurationMinutes) * time.Minute)
			duration = a.DurationMinutes
		}

		suggestion := &entity.ActivitySuggestion{
			UserID:           userID,
			Title:            a.Title,
			Category:         a.Category,
			StartTime:        slot.Start,
			EndTime:          endTime,
			DurationMinutes:  duration,
			WeatherDependent: a.WeatherDependent,
			IndoorActivity:   a.IndoorActivity,
			Status:           entity.SuggestionPending,
		}
		if a.Description != "" {
			suggestion.Description = &a.Description
		}
		if a.Location != "" {
			suggestion.Location = &a.Location
		}
		if a.EnergyLevel >= 1 && a.EnergyLevel <= 5 {
			level := a.EnergyLevel
			suggestion.EnergyLevel = &level
		}
		if suggestion.Category == "" {
			suggestion.Category = "general"
		}

		created, err := s.repo.Create(ctx, suggestion)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save suggestion", err)
		}
		result = append(result, dto.ToSuggestionResponse(created))
	}
	return result, nil
}

func slotAt(slots []scheduleentity.FreeSlot, index int) (scheduleentity.FreeSlot, bool) {
	if index < 0 || index >= len(slots) {
		return scheduleentity.FreeSlot{}, false
	}
	return slots[index], true
}

func (s *suggestionService) GetMySuggestions(ctx context.Context, userID uuid.UUID) ([]dto.SuggestionResponse, *errors.AppError) {
	suggestions, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get suggestions", err)
	}

	result := make([]dto.SuggestionResponse, 0, len(suggestions))
	for i := range suggestions {
		result = append(result, dto.ToSuggestionResponse(&suggestions[i]))
	}
	return result, nil
}

func (s *suggestionService) requireOwned(ctx context.Context, userID, suggestionID uuid.UUID) (*entity.ActivitySuggestion, *errors.AppError) {
	suggestion, err := s.repo.GetByID(ctx, suggestionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get suggestion", err)
	}
	if suggestion == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "suggestion not found", nil)
	}
	if suggestion.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "not the suggestion owner", nil)
	}
	return suggestion, nil
}

func (s *suggestionService) Accept(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID) *errors.AppError {
	if _, appErr := s.requireOwned(ctx, userID, suggestionID); appErr != nil {
		return appErr
	}
	if err := s.repo.UpdateStatus(ctx, suggestionID, entity.SuggestionAccepted); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to accept suggestion", err)
	}
	return nil
}

func (s *suggestionService) Decline(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID) *errors.AppError {
	if _, appErr := s.requireOwned(ctx, userID, suggestionID); appErr != nil {
		return appErr
	}
	if err := s.repo.UpdateStatus(ctx, suggestionID, entity.SuggestionDeclined); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to decline suggestion", err)
	}
	return nil
}

func (s *suggestionService) Rate(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID, req *dto.RateSuggestionRequest) *errors.AppError {
	if _, appErr := s.requireOwned(ctx, userID, suggestionID); appErr != nil {
		return appErr
	}
	if err := s.repo.UpdateRating(ctx, suggestionID, req.Rating); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to rate suggestion", err)
	}
	return nil
}

// Share makes a suggestion reachable by a public slug. Sharing twice returns
// the existing slug.
func (s *suggestionService) Share(ctx context.Context, userID uuid.UUID, suggestionID uuid.UUID) (*dto.ShareResponse, *errors.AppError) {
	suggestion, appErr := s.requireOwned(ctx, userID, suggestionID)
	if appErr != nil {
		return nil, appErr
	}
	if suggestion.ShareSlug != nil {
		return &dto.ShareResponse{Slug: *suggestion.ShareSlug}, nil
	}

	shareSlug := fmt.Sprintf("%s-%s", slug.Make(suggestion.Title), utils.GenerateID())
	if err := s.repo.SetShareSlug(ctx, suggestionID, shareSlug); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to share suggestion", err)
	}
	return &dto.ShareResponse{Slug: shareSlug}, nil
}

func (s *suggestionService) GetShared(ctx context.Context, shareSlug string) (*dto.SuggestionResponse, *errors.AppError) {
	suggestion, err := s.repo.GetBySlug(ctx, shareSlug)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get shared suggestion", err)
	}
	if suggestion == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "shared suggestion not found", nil)
	}

	resp := dto.ToSuggestionResponse(suggestion)
	return &resp, nil
}

func (s *suggestionService) SearchPlaces(ctx context.Context, req *dto.PlaceSearchRequest) ([]dto.PlaceResponse, *errors.AppError) {
	places, err := s.yelp.SearchPlaces(ctx, req.Term, req.Location, req.Limit)
	if err != nil {
		logger.Error("SuggestionService:SearchPlaces:Yelp:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to search places", err)
	}
	return places, nil
}
