package service

import (
	"sort"
	"time"

	"plansync/core/constants"
	"plansync/core/errors"
	calendarentity "plansync/modules/calendar/entity"
	"plansync/modules/schedule/entity"
)

// dayWindow returns the searchable range for a calendar day. Activities are
// only suggested during waking hours, so the window is a fixed policy
// constant rather than user data.
func dayWindow(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	start := time.Date(y, m, d, constants.DayWindowStartHour, 0, 0, 0, loc)
	end := time.Date(y, m, d, constants.DayWindowEndHour, 0, 0, 0, loc)
	return start, end
}

// FindFreeSlots computes the open windows of a day that are long enough to
// host an activity. Busy intervals may arrive in any order and may overlap;
// overlapping intervals merge into one blocked region because the cursor
// only ever advances.
func FindFreeSlots(busy []calendarentity.BusyInterval, day time.Time, minimumDurationMinutes int) ([]entity.FreeSlot, *errors.AppError) {
	if minimumDurationMinutes <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "minimum duration must be positive", nil)
	}
	for _, b := range busy {
		if b.End.Before(b.Start) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "busy interval ends before it starts", nil)
		}
	}

	windowStart, windowEnd := dayWindow(day)
	minDuration := time.Duration(minimumDurationMinutes) * time.Minute

	sorted := make([]calendarentity.BusyInterval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	slots := make([]entity.FreeSlot, 0)
	cursor := windowStart
	for _, b := range sorted {
		if cursor.Before(b.Start) {
			gapEnd := b.Start
			if gapEnd.After(windowEnd) {
				gapEnd = windowEnd
			}
			if gap := gapEnd.Sub(cursor); gap >= minDuration {
				slots = append(slots, entity.FreeSlot{
					Start:           cursor,
					End:             gapEnd,
					DurationMinutes: int(gap.Minutes()),
				})
			}
		}
		// Clamp instead of assigning: an interval ending before the cursor
		// must not re-open time that is already blocked.
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(windowEnd) {
			return slots, nil
		}
	}

	if cursor.Before(windowEnd) {
		if gap := windowEnd.Sub(cursor); gap >= minDuration {
			slots = append(slots, entity.FreeSlot{
				Start:           cursor,
				End:             windowEnd,
				DurationMinutes: int(gap.Minutes()),
			})
		}
	}

	return slots, nil
}
