package dto

import (
	"time"

	"plansync/modules/suggestion/entity"

	"github.com/google/uuid"
)

type GenerateSuggestionsRequest struct {
	Date            string `json:"date" validate:"required"`
	MinimumDuration int    `json:"min_duration"`
}

type RateSuggestionRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type PlaceSearchRequest struct {
	Term     string `query:"term" validate:"required"`
	Location string `query:"location" validate:"required"`
	Limit    int    `query:"limit"`
}

type SuggestionResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description,omitempty"`
	Category         string    `json:"category"`
	Location         *string   `json:"location,omitempty"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	EnergyLevel      *int      `json:"energy_level,omitempty"`
	WeatherDependent bool      `json:"weather_dependent"`
	IndoorActivity   bool      `json:"indoor_activity"`
	Status           string    `json:"status"`
	Rating           *int      `json:"rating,omitempty"`
	ShareSlug        *string   `json:"share_slug,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type ShareResponse struct {
	Slug string `json:"slug"`
}

type PlaceResponse struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category"`
	URL      string  `json:"url"`
}

func ToSuggestionResponse(s *entity.ActivitySuggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:               s.ID,
		Title:            s.Title,
		Description:      s.Description,
		Category:         s.Category,
		Location:         s.Location,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		DurationMinutes:  s.DurationMinutes,
		EnergyLevel:      s.EnergyLevel,
		WeatherDependent: s.WeatherDependent,
		IndoorActivity:   s.IndoorActivity,
		Status:           s.Status,
		Rating:           s.Rating,
		ShareSlug:        s.ShareSlug,
		CreatedAt:        s.CreatedAt,
	}
}
