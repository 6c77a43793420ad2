package service

import (
	"context"
	"time"

	"plansync/core/errors"
	calendarservice "plansync/modules/calendar/service"
	"plansync/modules/schedule/entity"

	"github.com/google/uuid"
)

const defaultMinimumDurationMinutes = 30

type ScheduleServiceInterface interface {
	GetFreeSlots(ctx context.Context, userID uuid.UUID, date string, minimumDurationMinutes int) ([]entity.FreeSlot, *errors.AppError)
}

type scheduleService struct {
	calendarService calendarservice.CalendarServiceInterface
}

func NewScheduleService(calendarService calendarservice.CalendarServiceInterface) ScheduleServiceInterface {
	return &scheduleService{calendarService: calendarService}
}

// GetFreeSlots fetches the user's busy intervals for the given date and
// derives the open windows long enough for an activity.
func (s *scheduleService) GetFreeSlots(ctx context.Context, userID uuid.UUID, date string, minimumDurationMinutes int) ([]entity.FreeSlot, *errors.AppError) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "date must be YYYY-MM-DD", err)
	}
	if minimumDurationMinutes == 0 {
		minimumDurationMinutes = defaultMinimumDurationMinutes
	}
	if minimumDurationMinutes < 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "min_duration must be positive", nil)
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	busy, appErr := s.calendarService.GetBusyIntervals(ctx, userID, dayStart, dayEnd)
	if appErr != nil {
		return nil, appErr
	}

	return FindFreeSlots(busy, day, minimumDurationMinutes)
}
