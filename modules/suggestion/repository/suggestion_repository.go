package repository

import (
	"context"
	"database/sql"

	"plansync/core/database"
	"plansync/core/logger"
	"plansync/modules/suggestion/entity"

	"github.com/google/uuid"
)

type SuggestionRepository interface {
	Create(ctx context.Context, s *entity.ActivitySuggestion) (*entity.ActivitySuggestion, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ActivitySuggestion, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.ActivitySuggestion, error)
	GetBySlug(ctx context.Context, slug string) (*entity.ActivitySuggestion, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating int) error
	SetShareSlug(ctx context.Context, id uuid.UUID, slug string) error
}

type suggestionRepository struct {
	db database.Database
}

func NewSuggestionRepository(db database.Database) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, s *entity.ActivitySuggestion) (*entity.ActivitySuggestion, error) {
	query := `
		INSERT INTO activity_suggestions (user_id, title, description, category, location, start_time, end_time, duration_minutes, energy_level, weather_dependent, indoor_activity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		s.UserID, s.Title, s.Description, s.Category, s.Location, s.StartTime, s.EndTime,
		s.DurationMinutes, s.EnergyLevel, s.WeatherDependent, s.IndoorActivity, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		logger.Error("SuggestionRepository:Create", err)
		return nil, err
	}
	return s, nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ActivitySuggestion, error) {
	query := `
		SELECT id, user_id, title, description, category, location, start_time, end_time, duration_minutes, energy_level, weather_dependent, indoor_activity, status, rating, share_slug, created_at, updated_at
		FROM activity_suggestions
		WHERE id = $1
	`

	var s entity.ActivitySuggestion
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SuggestionRepository:GetByID", err)
		return nil, err
	}
	return &s, nil
}

func (r *suggestionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.ActivitySuggestion, error) {
	query := `
		SELECT id, user_id, title, description, category, location, start_time, end_time, duration_minutes, energy_level, weather_dependent, indoor_activity, status, rating, share_slug, created_at, updated_at
		FROM activity_suggestions
		WHERE user_id = $1
		ORDER BY start_time ASC
	`

	var suggestions []entity.ActivitySuggestion
	if err := r.db.SelectContext(ctx, &suggestions, query, userID); err != nil {
		logger.Error("SuggestionRepository:GetByUserID", err)
		return nil, err
	}
	return suggestions, nil
}

func (r *suggestionRepository) GetBySlug(ctx context.Context, slug string) (*entity.ActivitySuggestion, error) {
	query := `
		SELECT id, user_id, title, description, category, location, start_time, end_time, duration_minutes, energy_level, weather_dependent, indoor_activity, status, rating, share_slug, created_at, updated_at
		FROM activity_suggestions
		WHERE share_slug = $1
	`

	var s entity.ActivitySuggestion
	err := r.db.GetContext(ctx, &s, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SuggestionRepository:GetBySlug", err)
		return nil, err
	}
	return &s, nil
}

func (r *suggestionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE activity_suggestions SET status = $2, updated_at = NOW() WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id, status); err != nil {
		logger.Error("SuggestionRepository:UpdateStatus", err)
		return err
	}
	return nil
}

func (r *suggestionRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating int) error {
	query := `UPDATE activity_suggestions SET rating = $2, updated_at = NOW() WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id, rating); err != nil {
		logger.Error("SuggestionRepository:UpdateRating", err)
		return err
	}
	return nil
}

func (r *suggestionRepository) SetShareSlug(ctx context.Context, id uuid.UUID, slug string) error {
	query := `UPDATE activity_suggestions SET share_slug = $2, updated_at = NOW() WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id, slug); err != nil {
		logger.Error("SuggestionRepository:SetShareSlug", err)
		return err
	}
	return nil
}
