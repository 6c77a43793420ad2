package controller

import (
	"plansync/core/constants"
	"plansync/core/controller"
	"plansync/core/errors"
	"plansync/core/params"
	"plansync/core/utils"
	"plansync/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// List handles GET /notifications
// @Summary List my notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.Pagination[dto.NotificationResponse]
// @Router /notifications [get]
func (c *NotificationController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.NotificationService.List(ctx.Request().Context(), userID, params.NewQueryParams(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Notifications retrieved")
}

// UnreadCount handles GET /notifications/unread-count
// @Summary Count unread notifications
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UnreadCountResponse
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.NotificationService.UnreadCount(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Unread count retrieved")
}

// MarkRead handles PUT /notifications/:id/read
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} nil
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	notificationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid notification id")
	}

	if appErr := c.NotificationService.MarkRead(ctx.Request().Context(), userID, notificationID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Notification marked read")
}

// MarkAllRead handles PUT /notifications/read-all
// @Summary Mark all notifications as read
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} nil
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	if appErr := c.NotificationService.MarkAllRead(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "All notifications marked read")
}
