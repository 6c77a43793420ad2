package repository

import (
	"context"
	"database/sql"
	"time"

	"plansync/core/database"
	"plansync/core/logger"
	"plansync/modules/calendar/entity"

	"github.com/google/uuid"
)

type CalendarRepository interface {
	// Connections
	CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error)
	GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error)
	GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error)
	UpdateConnectionTokens(ctx context.Context, id uuid.UUID, accessToken string, expiresAt time.Time) error
	DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error

	// Events
	CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
	GetEventsForRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type calendarRepository struct {
	db database.Database
}

func NewCalendarRepository(db database.Database) CalendarRepository {
	return &calendarRepository{db: db}
}

// ===================== Connections =====================

func (r *calendarRepository) CreateConnection(ctx context.Context, conn *entity.CalendarConnection) (*entity.CalendarConnection, error) {
	query := `
		INSERT INTO calendar_connections (user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, provider) DO UPDATE
		SET access_token = $3, refresh_token = $4, token_expires_at = $5, calendar_email = $6, is_active = $7, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		conn.UserID, conn.Provider, conn.AccessToken, conn.RefreshToken,
		conn.TokenExpiresAt, conn.CalendarEmail, conn.IsActive,
	).Scan(&conn.ID, &conn.CreatedAt, &conn.UpdatedAt)

	if err != nil {
		logger.Error("CalendarRepository:CreateConnection", err)
		return nil, err
	}
	return conn, nil
}

func (r *calendarRepository) GetConnectionByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1 AND provider = $2 AND is_active = true
	`

	var conn entity.CalendarConnection
	err := r.db.GetContext(ctx, &conn, query, userID, provider)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetConnectionByUserAndProvider", err)
		return nil, err
	}
	return &conn, nil
}

func (r *calendarRepository) GetConnectionsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, token_expires_at, calendar_email, is_active, created_at, updated_at
		FROM calendar_connections
		WHERE user_id = $1
		ORDER BY created_at
	`

	var conns []entity.CalendarConnection
	err := r.db.SelectContext(ctx, &conns, query, userID)
	if err != nil {
		logger.Error("CalendarRepository:GetConnectionsByUserID", err)
		return nil, err
	}
	return conns, nil
}

func (r *calendarRepository) UpdateConnectionTokens(ctx context.Context, id uuid.UUID, accessToken string, expiresAt time.Time) error {
	query := `UPDATE calendar_connections SET access_token = $2, token_expires_at = $3, updated_at = NOW() WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id, accessToken, expiresAt)
	if err != nil {
		logger.Error("CalendarRepository:UpdateConnectionTokens", err)
		return err
	}
	return nil
}

func (r *calendarRepository) DeleteConnection(ctx context.Context, userID uuid.UUID, provider string) error {
	query := `UPDATE calendar_connections SET is_active = false, updated_at = NOW() WHERE user_id = $1 AND provider = $2`
	err := r.db.ExecContext(ctx, query, userID, provider)
	if err != nil {
		logger.Error("CalendarRepository:DeleteConnection", err)
		return err
	}
	return nil
}

// ===================== Events =====================

func (r *calendarRepository) CreateEvent(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (user_id, title, description, start_time, end_time, location, category, source, external_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, title, description, start_time, end_time, location, category, source, external_id, created_at, updated_at
	`

	var created entity.Event
	err := r.db.GetContext(ctx, &created, query,
		event.UserID, event.Title, event.Description, event.StartTime, event.EndTime,
		event.Location, event.Category, event.Source, event.ExternalID)
	if err != nil {
		logger.Error("CalendarRepository:CreateEvent", err)
		return nil, err
	}
	return &created, nil
}

func (r *calendarRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, location, category, source, external_id, created_at, updated_at
		FROM events WHERE id = $1
	`

	var event entity.Event
	err := r.db.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("CalendarRepository:GetEventByID", err)
		return nil, err
	}
	return &event, nil
}

func (r *calendarRepository) GetEventsByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, location, category, source, external_id, created_at, updated_at
		FROM events
		WHERE user_id = $1
		ORDER BY start_time
	`

	var events []entity.Event
	err := r.db.SelectContext(ctx, &events, query, userID)
	if err != nil {
		logger.Error("CalendarRepository:GetEventsByUserID", err)
		return nil, err
	}
	return events, nil
}

// GetEventsForRange returns the user's events overlapping [start, end).
func (r *calendarRepository) GetEventsForRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]entity.Event, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, location, category, source, external_id, created_at, updated_at
		FROM events
		WHERE user_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`

	var events []entity.Event
	err := r.db.SelectContext(ctx, &events, query, userID, start, end)
	if err != nil {
		logger.Error("CalendarRepository:GetEventsForRange", err)
		return nil, err
	}
	return events, nil
}

func (r *calendarRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, start_time = $4, end_time = $5, location = $6, category = $7, updated_at = NOW()
		WHERE id = $1
	`
	err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.StartTime, event.EndTime, event.Location, event.Category)
	if err != nil {
		logger.Error("CalendarRepository:UpdateEvent", err)
		return err
	}
	return nil
}

func (r *calendarRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`
	err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("CalendarRepository:DeleteEvent", err)
		return err
	}
	return nil
}
