package service

import (
	"context"

	coredto "plansync/core/dto"
	"plansync/core/errors"
	"plansync/core/params"
	"plansync/modules/notification/dto"
	"plansync/modules/notification/entity"
	"plansync/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationServiceInterface interface {
	// Notify creates an in-app notification. Also satisfies the Notifier
	// interfaces of modules that emit notifications.
	Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]any) error

	List(ctx context.Context, userID uuid.UUID, p *params.QueryParams) (*coredto.Pagination[dto.NotificationResponse], *errors.AppError)
	UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) *errors.AppError
	MarkAllRead(ctx context.Context, userID uuid.UUID) *errors.AppError
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationServiceInterface {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, userID uuid.UUID, notifType, title, message string, data map[string]any) error {
	return s.repo.Create(ctx, &entity.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	})
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, p *params.QueryParams) (*coredto.Pagination[dto.NotificationResponse], *errors.AppError) {
	notifications, total, err := s.repo.GetByUserID(ctx, userID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list notifications", err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.ToNotificationResponse(&notifications[i]))
	}
	return coredto.ToPagination(items, total, p.PageNumber, p.PageSize), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (*dto.UnreadCountResponse, *errors.AppError) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to count notifications", err)
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkRead(ctx, userID, notificationID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to mark notification read", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) *errors.AppError {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to mark notifications read", err)
	}
	return nil
}
