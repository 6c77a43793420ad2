package repository

import (
	"context"
	"database/sql"

	"plansync/core/database"
	"plansync/core/logger"
	"plansync/modules/auth/entity"

	"github.com/google/uuid"
)

// AuthRepositoryInterface defines the repository contract
type AuthRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]entity.User, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs *entity.UserPreferences) error
}

type AuthRepository struct {
	DB database.Database
}

func NewAuthRepository(db database.Database) *AuthRepository {
	return &AuthRepository{DB: db}
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (username, password, location, preferences, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, password, location, preferences, is_active, created_at, updated_at
	`

	var created entity.User
	err := r.DB.GetContext(ctx, &created, query,
		user.Username, user.Password, user.Location, user.Preferences, user.IsActive)
	if err != nil {
		logger.Error("AuthRepository:CreateUser", err)
		return nil, err
	}

	return &created, nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, username, password, location, preferences, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByID", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `
		SELECT id, username, password, location, preferences, is_active, created_at, updated_at
		FROM users WHERE username = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("AuthRepository:GetUserByUsername", err)
		return nil, err
	}

	return &user, nil
}

func (r *AuthRepository) SearchUsers(ctx context.Context, query string, limit int) ([]entity.User, error) {
	sqlQuery := `
		SELECT id, username, password, location, preferences, is_active, created_at, updated_at
		FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username
		LIMIT $2
	`

	var users []entity.User
	err := r.DB.SelectContext(ctx, &users, sqlQuery, query, limit)
	if err != nil {
		logger.Error("AuthRepository:SearchUsers", err)
		return nil, err
	}

	return users, nil
}

func (r *AuthRepository) UpdatePreferences(ctx context.Context, userID uuid.UUID, prefs *entity.UserPreferences) error {
	query := `UPDATE users SET preferences = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, userID, prefs)
	if err != nil {
		logger.Error("AuthRepository:UpdatePreferences", err)
		return err
	}
	return nil
}
