package repository

import (
	"context"

	"plansync/core/database"
	"plansync/core/logger"
	"plansync/core/params"
	"plansync/modules/notification/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID, p *params.QueryParams) ([]entity.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

type notificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5)
	`
	if err := r.db.ExecContext(ctx, query, n.UserID, n.Type, n.Title, n.Message, n.Data); err != nil {
		logger.Error("NotificationRepository:Create", err)
		return err
	}
	return nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, p *params.QueryParams) ([]entity.Notification, int, error) {
	countQuery := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Count", err)
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, type, title, message, data, is_read, created_at, updated_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	offset := (p.PageNumber - 1) * p.PageSize

	var notifications []entity.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, p.PageSize, offset); err != nil {
		logger.Error("NotificationRepository:GetByUserID:Select", err)
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("NotificationRepository:CountUnread", err)
		return 0, err
	}
	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	if err := r.db.ExecContext(ctx, query, notificationID, userID); err != nil {
		logger.Error("NotificationRepository:MarkRead", err)
		return err
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = true, updated_at = NOW()
		WHERE user_id = $1 AND is_read = false
	`
	if err := r.db.ExecContext(ctx, query, userID); err != nil {
		logger.Error("NotificationRepository:MarkAllRead", err)
		return err
	}
	return nil
}
