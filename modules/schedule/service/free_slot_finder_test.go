package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	calendarentity "plansync/modules/calendar/entity"
)

var testDay = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

func busy(startHour, startMin, endHour, endMin int) calendarentity.BusyInterval {
	return calendarentity.BusyInterval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestFindFreeSlots_EmptyDay(t *testing.T) {
	slots, err := FindFreeSlots(nil, testDay, 30)
	require.Nil(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(21, 0), slots[0].End)
	assert.Equal(t, 720, slots[0].DurationMinutes)
}

func TestFindFreeSlots_TwoEvents(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		busy(9, 0, 9, 30),
		busy(11, 0, 12, 0),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, at(9, 30), slots[0].Start)
	assert.Equal(t, at(11, 0), slots[0].End)
	assert.Equal(t, 90, slots[0].DurationMinutes)

	assert.Equal(t, at(12, 0), slots[1].Start)
	assert.Equal(t, at(21, 0), slots[1].End)
	assert.Equal(t, 540, slots[1].DurationMinutes)
}

func TestFindFreeSlots_OverlappingIntervalsMerge(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		busy(9, 0, 10, 0),
		busy(9, 30, 11, 0),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, at(11, 0), slots[0].Start)
	assert.Equal(t, at(21, 0), slots[0].End)
	assert.Equal(t, 600, slots[0].DurationMinutes)
}

func TestFindFreeSlots_NestedIntervalDoesNotRetreatCursor(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		busy(9, 0, 12, 0),
		busy(10, 0, 10, 30),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, at(12, 0), slots[0].Start)
}

func TestFindFreeSlots_UnsortedInput(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		busy(15, 0, 16, 0),
		busy(10, 0, 11, 0),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(11, 0), slots[1].Start)
	assert.Equal(t, at(16, 0), slots[2].Start)
}

func TestFindFreeSlots_MinimumDurationFiltersShortGaps(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		busy(9, 0, 10, 0),
		busy(10, 15, 21, 0),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	assert.Empty(t, slots)
}

func TestFindFreeSlots_IntervalOutsideWindow(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		{Start: at(6, 0), End: at(7, 0)},
		busy(10, 0, 11, 0),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, at(9, 0), slots[0].Start)
	assert.Equal(t, at(10, 0), slots[0].End)
}

func TestFindFreeSlots_BusyCoversWholeWindow(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		{Start: at(8, 0), End: at(22, 0)},
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	assert.Empty(t, slots)
}

func TestFindFreeSlots_InvalidMinimumDuration(t *testing.T) {
	_, err := FindFreeSlots(nil, testDay, 0)
	require.NotNil(t, err)

	_, err = FindFreeSlots(nil, testDay, -15)
	require.NotNil(t, err)
}

func TestFindFreeSlots_InvalidInterval(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		{Start: at(12, 0), End: at(11, 0)},
	}

	_, err := FindFreeSlots(intervals, testDay, 30)
	require.NotNil(t, err)
}

func TestFindFreeSlots_NoOverlapBetweenSlotsAndBusy(t *testing.T) {
	intervals := []calendarentity.BusyInterval{
		busy(9, 15, 9, 45),
		busy(12, 0, 13, 30),
		busy(13, 0, 14, 0),
		busy(18, 0, 19, 0),
	}

	slots, err := FindFreeSlots(intervals, testDay, 30)
	require.Nil(t, err)
	require.NotEmpty(t, slots)

	for i, s := range slots {
		assert.True(t, s.End.After(s.Start))
		assert.GreaterOrEqual(t, s.DurationMinutes, 30)
		if i > 0 {
			assert.False(t, s.Start.Before(slots[i-1].End), "slots must be ordered and disjoint")
		}
		for _, b := range intervals {
			overlaps := s.Start.Before(b.End) && b.Start.Before(s.End)
			assert.False(t, overlaps, "free slot must not overlap a busy interval")
		}
	}
}
