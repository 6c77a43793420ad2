package controller

import (
	"plansync/core/constants"
	"plansync/core/controller"
	"plansync/core/errors"
	"plansync/core/utils"
	"plansync/modules/schedule/dto"
	"plansync/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
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

// GetFreeSlots handles GET /schedule/free-slots
// @Summary Get free time slots for a day
// @Description Computes open windows between the user's commitments during waking hours
// @Tags Schedule
// @Produce json
// @Security BearerAuth
// @Param date query string true "Day to search (YYYY-MM-DD)"
// @Param min_duration query int false "Minimum slot length in minutes (default 30)"
// @Success 200 {object} dto.FreeSlotsResponse
// @Failure 400 {object} errors.AppError
// @Router /schedule/free-slots [get]
func (c *ScheduleController) GetFreeSlots(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	var req dto.FreeSlotsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	slots, appErr := c.ScheduleService.GetFreeSlots(ctx.Request().Context(), userID, req.Date, req.MinimumDuration)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, dto.ToFreeSlotsResponse(req.Date, slots), "Free slots computed")
}
