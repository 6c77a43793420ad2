package entity

import (
	"time"

	"plansync/core/entity"

	"github.com/google/uuid"
)

const (
	SuggestionPending  = "pending"
	SuggestionAccepted = "accepted"
	SuggestionDeclined = "declined"
)

// ActivitySuggestion is a generated activity idea anchored to a free slot of
// the user's day.
type ActivitySuggestion struct {
	entity.BaseEntity
	UserID           uuid.UUID `json:"user_id" db:"user_id"`
	Title            string    `json:"title" db:"title"`
	Description      *string   `json:"description" db:"description"`
	Category         string    `json:"category" db:"category"`
	Location         *string   `json:"location" db:"location"`
	StartTime        time.Time `json:"start_time" db:"start_time"`
	EndTime          time.Time `json:"end_time" db:"end_time"`
	DurationMinutes  int       `json:"duration_minutes" db:"duration_minutes"`
	EnergyLevel      *int      `json:"energy_level" db:"energy_level"`
	WeatherDependent bool      `json:"weather_dependent" db:"weather_dependent"`
	IndoorActivity   bool      `json:"indoor_activity" db:"indoor_activity"`
	Status           string    `json:"status" db:"status"`
	Rating           *int      `json:"rating" db:"rating"`
	ShareSlug        *string   `json:"share_slug" db:"share_slug"`
}
