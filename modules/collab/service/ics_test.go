package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"plansync/modules/collab/entity"
)

func TestBuildICS(t *testing.T) {
	start := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	location := "Blue Note; Main St, Downtown"
	event := &entity.CollaborativeEvent{
		Title:          "Team dinner",
		Status:         entity.StatusConfirmed,
		FinalStartTime: &start,
		FinalEndTime:   &end,
		FinalLocation:  &location,
	}

	ics := buildICS(event, time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	assert.Contains(t, ics, "DTSTART:20260401T180000Z\r\n")
	assert.Contains(t, ics, "DTEND:20260401T200000Z\r\n")
	assert.Contains(t, ics, "SUMMARY:Team dinner\r\n")
	assert.Contains(t, ics, "LOCATION:Blue Note\\; Main St\\, Downtown\r\n")
}

func TestBuildICS_OmitsUnsetFields(t *testing.T) {
	start := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	event := &entity.CollaborativeEvent{
		Title:          "Walk",
		FinalStartTime: &start,
	}

	ics := buildICS(event, time.Now())

	assert.NotContains(t, ics, "DTEND:")
	assert.NotContains(t, ics, "LOCATION:")
	assert.NotContains(t, ics, "DESCRIPTION:")
}
