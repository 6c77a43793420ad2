package controller

import (
	"plansync/core/constants"
	"plansync/core/controller"
	"plansync/core/errors"
	"plansync/core/utils"
	"plansync/modules/calendar/dto"
	"plansync/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CalendarController struct {
	controller.BaseController
	CalendarService service.CalendarServiceInterface
}

func NewCalendarController(svc service.CalendarServiceInterface) *CalendarController {
	return &CalendarController{
		BaseController:  controller.NewBaseController(),
		CalendarService: svc,
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

// GetGoogleAuthURL handles GET /calendar/google/auth-url
// @Summary Get Google OAuth URL
// @Description Returns the URL to start the Google Calendar OAuth flow
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AuthURLResponse
// @Router /calendar/google/auth-url [get]
func (c *CalendarController) GetGoogleAuthURL(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.CalendarService.GetGoogleAuthURL(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Auth URL generated")
}

// GoogleCallback handles POST /calendar/google/callback
// @Summary Complete Google OAuth
// @Description Exchange the authorization code and store the calendar connection
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConnectCallbackRequest true "Authorization code"
// @Success 200 {object} dto.CalendarConnectionResponse
// @Failure 401 {object} errors.AppError
// @Router /calendar/google/callback [post]
func (c *CalendarController) GoogleCallback(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	var req dto.ConnectCallbackRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CalendarService.HandleGoogleCallback(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Calendar connected")
}

// GetConnections handles GET /calendar/connections
// @Summary List calendar connections
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CalendarConnectionResponse
// @Router /calendar/connections [get]
func (c *CalendarController) GetConnections(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.CalendarService.GetConnections(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Connections retrieved")
}

// Disconnect handles DELETE /calendar/connections/:provider
// @Summary Disconnect a calendar provider
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param provider path string true "Provider name"
// @Success 200 {object} nil
// @Router /calendar/connections/{provider} [delete]
func (c *CalendarController) Disconnect(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	provider := ctx.Param("provider")
	if provider == "" {
		return c.BadRequest(errors.ErrInvalidInput, "provider is required")
	}

	if appErr := c.CalendarService.DisconnectCalendar(ctx.Request().Context(), userID, provider); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Calendar disconnected")
}

// CreateEvent handles POST /events
// @Summary Create an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event info"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Router /events [post]
func (c *CalendarController) CreateEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CalendarService.CreateEvent(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created")
}

// GetMyEvents handles GET /events
// @Summary List my events
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EventResponse
// @Router /events [get]
func (c *CalendarController) GetMyEvents(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.CalendarService.GetMyEvents(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Events retrieved")
}

// UpdateEvent handles PUT /events/:id
// @Summary Update an event
// @Tags Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.EventResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /events/{id} [put]
func (c *CalendarController) UpdateEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.CalendarService.UpdateEvent(ctx.Request().Context(), userID, eventID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated")
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} nil
// @Failure 404 {object} errors.AppError
// @Router /events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	if appErr := c.CalendarService.DeleteEvent(ctx.Request().Context(), userID, eventID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted")
}
