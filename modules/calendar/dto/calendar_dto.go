package dto

import (
	"time"

	"plansync/modules/calendar/entity"
)

// ===================== Request DTOs =====================

type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
}

type UpdateEventRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
}

type ConnectCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}

// ===================== Response DTOs =====================

type CalendarConnectionResponse struct {
	ID            string    `json:"id"`
	Provider      string    `json:"provider"`
	CalendarEmail string    `json:"calendar_email"`
	IsActive      bool      `json:"is_active"`
	ConnectedAt   time.Time `json:"connected_at"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location,omitempty"`
	Category    string    `json:"category"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthURLResponse struct {
	URL string `json:"url"`
}

// TimeSlot is a generic time range used in free/busy payloads.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ===================== Mapper Functions =====================

func ToConnectionResponse(c *entity.CalendarConnection) CalendarConnectionResponse {
	return CalendarConnectionResponse{
		ID:            c.ID.String(),
		Provider:      c.Provider,
		CalendarEmail: c.CalendarEmail,
		IsActive:      c.IsActive,
		ConnectedAt:   c.CreatedAt,
	}
}

func ToEventResponse(e *entity.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID.String(),
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Category:  e.Category,
		CreatedAt: e.CreatedAt,
	}
	if e.Description != nil {
		resp.Description = *e.Description
	}
	if e.Location != nil {
		resp.Location = *e.Location
	}
	if e.Source != nil {
		resp.Source = *e.Source
	}
	return resp
}
