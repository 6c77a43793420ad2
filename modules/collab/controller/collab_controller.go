package controller

import (
	"plansync/core/constants"
	"plansync/core/controller"
	"plansync/core/errors"
	"plansync/core/utils"
	"plansync/modules/collab/dto"
	"plansync/modules/collab/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type CollabController struct {
	controller.BaseController
	CollabService service.CollabServiceInterface
}

func NewCollabController(svc service.CollabServiceInterface) *CollabController {
	return &CollabController{
		BaseController: controller.NewBaseController(),
		CollabService:  svc,
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

func pathID(ctx echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(ctx.Param(name))
}

// Create handles POST /collab-events
// @Summary Create a collaborative event
// @Description Start a plan in planning status; the creator becomes the organizer
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCollabEventRequest true "Event info"
// @Success 200 {object} dto.CollabEventResponse
// @Failure 400 {object} errors.AppError
// @Router /collab-events [post]
func (c *CollabController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	var req dto.CreateCollabEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CollabService.CreateEvent(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Collaborative event created")
}

// List handles GET /collab-events
// @Summary List my collaborative events
// @Tags Collab
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CollabEventResponse
// @Router /collab-events [get]
func (c *CollabController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.CollabService.GetMyEvents(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Events retrieved")
}

// Detail handles GET /collab-events/:id
// @Summary Get a collaborative event with proposals and tallies
// @Tags Collab
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.CollabEventDetailResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /collab-events/{id} [get]
func (c *CollabController) Detail(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.CollabService.GetEventDetail(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event retrieved")
}

// Invite handles POST /collab-events/:id/invites
// @Summary Invite users to a collaborative event
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.InviteRequest true "User IDs to invite"
// @Success 200 {object} nil
// @Failure 403 {object} errors.AppError
// @Router /collab-events/{id}/invites [post]
func (c *CollabController) Invite(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.InviteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	if appErr := c.CollabService.Invite(ctx.Request().Context(), userID, eventID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Invitations sent")
}

// Respond handles PUT /collab-events/:id/respond
// @Summary Accept or decline an invitation
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.RespondRequest true "accepted or declined"
// @Success 200 {object} nil
// @Router /collab-events/{id}/respond [put]
func (c *CollabController) Respond(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.RespondRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	if appErr := c.CollabService.Respond(ctx.Request().Context(), userID, eventID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Response recorded")
}

// ProposeTimeSlot handles POST /collab-events/:id/time-slots
// @Summary Propose a time slot
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.ProposeTimeSlotRequest true "Candidate window"
// @Success 200 {object} dto.TimeSlotProposalResponse
// @Failure 400 {object} errors.AppError
// @Router /collab-events/{id}/time-slots [post]
func (c *CollabController) ProposeTimeSlot(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.ProposeTimeSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CollabService.ProposeTimeSlot(ctx.Request().Context(), userID, eventID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Time slot proposed")
}

// ProposeLocation handles POST /collab-events/:id/locations
// @Summary Propose a location
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.ProposeLocationRequest true "Candidate place"
// @Success 200 {object} dto.LocationProposalResponse
// @Router /collab-events/{id}/locations [post]
func (c *CollabController) ProposeLocation(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	var req dto.ProposeLocationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.CollabService.ProposeLocation(ctx.Request().Context(), userID, eventID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Location proposed")
}

// VoteTimeSlot handles PUT /collab-events/:id/time-slots/:slotId/vote
// @Summary Vote on a time slot proposal
// @Description Records a 1-5 preference; voting again replaces the prior vote
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param slotId path string true "Time slot proposal ID"
// @Param request body dto.VoteRequest true "Preference 1-5"
// @Success 200 {object} nil
// @Failure 404 {object} errors.AppError
// @Router /collab-events/{id}/time-slots/{slotId}/vote [put]
func (c *CollabController) VoteTimeSlot(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}
	slotID, err := pathID(ctx, "slotId")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid time slot id")
	}

	var req dto.VoteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	if appErr := c.CollabService.VoteTimeSlot(ctx.Request().Context(), userID, eventID, slotID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Vote recorded")
}

// VoteLocation handles PUT /collab-events/:id/locations/:locationId/vote
// @Summary Vote on a location proposal
// @Tags Collab
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param locationId path string true "Location proposal ID"
// @Param request body dto.VoteRequest true "Preference 1-5"
// @Success 200 {object} nil
// @Failure 404 {object} errors.AppError
// @Router /collab-events/{id}/locations/{locationId}/vote [put]
func (c *CollabController) VoteLocation(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}
	locationID, err := pathID(ctx, "locationId")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid location id")
	}

	var req dto.VoteRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	if appErr := c.CollabService.VoteLocation(ctx.Request().Context(), userID, eventID, locationID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Vote recorded")
}

// Finalize handles POST /collab-events/:id/finalize
// @Summary Close voting and resolve the event
// @Description Picks the winning time slot and location; confirms or cancels the event
// @Tags Collab
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.CollabEventResponse
// @Failure 403 {object} errors.AppError
// @Failure 422 {object} errors.AppError
// @Router /collab-events/{id}/finalize [post]
func (c *CollabController) Finalize(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.CollabService.Finalize(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event resolved")
}

// Export handles GET /collab-events/:id/export
// @Summary Export a confirmed event as an ICS file
// @Tags Collab
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.ExportResponse
// @Failure 400 {object} errors.AppError
// @Router /collab-events/{id}/export [get]
func (c *CollabController) Export(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	eventID, err := pathID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event id")
	}

	result, appErr := c.CollabService.ExportICS(ctx.Request().Context(), userID, eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Export ready")
}
