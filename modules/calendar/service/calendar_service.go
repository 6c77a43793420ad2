package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"plansync/core/cache"
	"plansync/core/config"
	"plansync/core/constants"
	"plansync/core/errors"
	"plansync/core/logger"
	"plansync/core/utils"
	"plansync/modules/calendar/dto"
	"plansync/modules/calendar/entity"
	"plansync/modules/calendar/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type CalendarServiceInterface interface {
	GetGoogleAuthURL(ctx context.Context, userID uuid.UUID) (*dto.AuthURLResponse, *errors.AppError)
	HandleGoogleCallback(ctx context.Context, userID uuid.UUID, req *dto.ConnectCallbackRequest) (*dto.CalendarConnectionResponse, *errors.AppError)
	GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.CalendarConnectionResponse, *errors.AppError)
	DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError

	CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	GetMyEvents(ctx context.Context, userID uuid.UUID) ([]dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) *errors.AppError

	// GetBusyIntervals returns every commitment of the user overlapping
	// [start, end): stored events plus provider free-busy.
	GetBusyIntervals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.BusyInterval, *errors.AppError)
}

type calendarService struct {
	repo  repository.CalendarRepository
	cache cache.Cache
}

func NewCalendarService(repo repository.CalendarRepository, cache cache.Cache) CalendarServiceInterface {
	return &calendarService{
		repo:  repo,
		cache: cache,
	}
}

func (s *calendarService) googleOAuthConfig() (*oauth2.Config, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}
	if cfg.GoogleAPI.ClientID == "" || cfg.GoogleAPI.ClientSecret == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Google OAuth is not configured", nil)
	}

	return &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		RedirectURL:  cfg.GoogleAPI.RedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/calendar.readonly",
			"https://www.googleapis.com/auth/userinfo.email",
		},
		Endpoint: google.Endpoint,
	}, nil
}

func (s *calendarService) GetGoogleAuthURL(ctx context.Context, userID uuid.UUID) (*dto.AuthURLResponse, *errors.AppError) {
	oauthCfg, appErr := s.googleOAuthConfig()
	if appErr != nil {
		return nil, appErr
	}

	state := utils.GenerateRandomString(24)
	url := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	return &dto.AuthURLResponse{URL: url}, nil
}

func (s *calendarService) HandleGoogleCallback(ctx context.Context, userID uuid.UUID, req *dto.ConnectCallbackRequest) (*dto.CalendarConnectionResponse, *errors.AppError) {
	oauthCfg, appErr := s.googleOAuthConfig()
	if appErr != nil {
		return nil, appErr
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	token, err := oauthCfg.Exchange(ctx, req.Code)
	if err != nil {
		logger.Error("CalendarService:HandleGoogleCallback:Exchange:Error:", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "failed to exchange authorization code", err)
	}

	email, err := s.fetchGoogleEmail(ctx, token.AccessToken)
	if err != nil {
		logger.Error("CalendarService:HandleGoogleCallback:FetchEmail:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch calendar email", err)
	}

	conn := &entity.CalendarConnection{
		UserID:         userID,
		Provider:       "google",
		AccessToken:    token.AccessToken,
		RefreshToken:   token.RefreshToken,
		TokenExpiresAt: token.Expiry,
		CalendarEmail:  email,
		IsActive:       true,
	}

	created, err := s.repo.CreateConnection(ctx, conn)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save calendar connection", err)
	}

	logger.Info("CalendarService:HandleGoogleCallback:Connected", "user_id", userID, "email", email)

	resp := dto.ToConnectionResponse(created)
	return &resp, nil
}

func (s *calendarService) fetchGoogleEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: constants.DefaultRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("userinfo API error: %d: %s", resp.StatusCode, string(body))
	}

	var info struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", err
	}
	return info.Email, nil
}

func (s *calendarService) GetConnections(ctx context.Context, userID uuid.UUID) ([]dto.CalendarConnectionResponse, *errors.AppError) {
	conns, err := s.repo.GetConnectionsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get connections", err)
	}

	result := make([]dto.CalendarConnectionResponse, 0, len(conns))
	for _, c := range conns {
		result = append(result, dto.ToConnectionResponse(&c))
	}
	return result, nil
}

func (s *calendarService) DisconnectCalendar(ctx context.Context, userID uuid.UUID, provider string) *errors.AppError {
	if err := s.repo.DeleteConnection(ctx, userID, provider); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to disconnect calendar", err)
	}
	return nil
}

// ===================== Events =====================

func (s *calendarService) CreateEvent(ctx context.Context, userID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	if !req.EndTime.After(req.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	category := req.Category
	if category == "" {
		category = "personal"
	}
	source := "manual"

	event := &entity.Event{
		UserID:    userID,
		Title:     req.Title,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Category:  category,
		Source:    &source,
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.Location != "" {
		event.Location = &req.Location
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create event", err)
	}

	resp := dto.ToEventResponse(created)
	return &resp, nil
}

func (s *calendarService) GetMyEvents(ctx context.Context, userID uuid.UUID) ([]dto.EventResponse, *errors.AppError) {
	events, err := s.repo.GetEventsByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, dto.ToEventResponse(&e))
	}
	return result, nil
}

func (s *calendarService) UpdateEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil || event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "event not found", err)
	}
	if event.UserID != userID {
		return nil, errors.NewAppError(errors.ErrForbidden, "not the event owner", nil)
	}

	if req.Title != "" {
		event.Title = req.Title
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.Location != "" {
		event.Location = &req.Location
	}
	if req.Category != "" {
		event.Category = req.Category
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "end_time must be after start_time", nil)
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update event", err)
	}

	resp := dto.ToEventResponse(event)
	return &resp, nil
}

func (s *calendarService) DeleteEvent(ctx context.Context, userID uuid.UUID, eventID uuid.UUID) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil || event == nil {
		return errors.NewAppError(errors.ErrNotFound, "event not found", err)
	}
	if event.UserID != userID {
		return errors.NewAppError(errors.ErrForbidden, "not the event owner", nil)
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete event", err)
	}
	return nil
}

// ===================== Free/busy =====================

func (s *calendarService) GetBusyIntervals(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.BusyInterval, *errors.AppError) {
	events, err := s.repo.GetEventsForRange(ctx, userID, start, end)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get events", err)
	}

	busy := make([]entity.BusyInterval, 0, len(events))
	for _, e := range events {
		busy = append(busy, entity.BusyInterval{Start: e.StartTime, End: e.EndTime})
	}

	providerBusy, appErr := s.getProviderBusy(ctx, userID, start, end)
	if appErr != nil {
		// A provider outage must not hide the user's own events.
		logger.Warn("CalendarService:GetBusyIntervals:ProviderUnavailable", "user_id", userID, "error", appErr)
	} else {
		busy = append(busy, providerBusy...)
	}

	sort.Slice(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	return busy, nil
}

func (s *calendarService) getProviderBusy(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.BusyInterval, *errors.AppError) {
	cacheKey := fmt.Sprintf("%s:%d:%d", userID, start.Unix(), end.Unix())
	if cached, err := s.cache.GetFreeBusy(ctx, cacheKey); err == nil && cached != "" {
		var busy []entity.BusyInterval
		if err := json.Unmarshal([]byte(cached), &busy); err == nil {
			return busy, nil
		}
	}

	conn, err := s.repo.GetConnectionByUserAndProvider(ctx, userID, "google")
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get connection", err)
	}
	if conn == nil {
		return nil, nil
	}

	accessToken, appErr := s.ensureValidToken(ctx, conn)
	if appErr != nil {
		return nil, appErr
	}

	busy, err := s.callGoogleFreeBusy(ctx, accessToken, conn.CalendarEmail, start, end)
	if err != nil {
		logger.Error("CalendarService:getProviderBusy:FreeBusy:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to fetch free/busy", err)
	}

	if payload, err := json.Marshal(busy); err == nil {
		if errSet := s.cache.SetFreeBusy(ctx, cacheKey, string(payload)); errSet != nil {
			logger.Warn("CalendarService:getProviderBusy:CacheSet:Error", "error", errSet)
		}
	}

	return busy, nil
}

// ensureValidToken refreshes the access token when it is about to expire and
// persists the new one.
func (s *calendarService) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, *errors.AppError) {
	if time.Until(conn.TokenExpiresAt) > time.Minute {
		return conn.AccessToken, nil
	}

	oauthCfg, appErr := s.googleOAuthConfig()
	if appErr != nil {
		return "", appErr
	}
	if conn.RefreshToken == "" {
		return "", errors.NewAppError(errors.ErrUnauthorized, "calendar connection expired, please reconnect", nil)
	}

	src := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: conn.RefreshToken})
	token, err := src.Token()
	if err != nil {
		logger.Error("CalendarService:ensureValidToken:Refresh:Error:", err)
		return "", errors.NewAppError(errors.ErrUnauthorized, "failed to refresh calendar token", err)
	}

	if err := s.repo.UpdateConnectionTokens(ctx, conn.ID, token.AccessToken, token.Expiry); err != nil {
		logger.Error("CalendarService:ensureValidToken:Persist:Error:", err)
	}

	return token.AccessToken, nil
}

func (s *calendarService) callGoogleFreeBusy(ctx context.Context, accessToken, email string, start, end time.Time) ([]entity.BusyInterval, error) {
	payload := map[string]any{
		"timeMin": start.UTC().Format(time.RFC3339),
		"timeMax": end.UTC().Format(time.RFC3339),
		"items":   []map[string]string{{"id": email}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", "https://www.googleapis.com/calendar/v3/freeBusy", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: constants.DefaultRequestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("freeBusy API error: %d: %s", resp.StatusCode, string(respBody))
	}

	var freeBusyResp struct {
		Calendars map[string]struct {
			Busy []struct {
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"busy"`
		} `json:"calendars"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&freeBusyResp); err != nil {
		return nil, err
	}

	var busy []entity.BusyInterval
	for _, cal := range freeBusyResp.Calendars {
		for _, b := range cal.Busy {
			busy = append(busy, entity.BusyInterval{Start: b.Start, End: b.End})
		}
	}
	return busy, nil
}
