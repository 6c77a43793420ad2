package controller

import (
	"context"

	"plansync/core/constants"
	"plansync/core/controller"
	"plansync/core/errors"
	"plansync/core/utils"
	"plansync/modules/suggestion/dto"
	"plansync/modules/suggestion/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SuggestionController struct {
	controller.BaseController
	SuggestionService service.SuggestionServiceInterface
}

func NewSuggestionController(svc service.SuggestionServiceInterface) *SuggestionController {
	return &SuggestionController{
		BaseController:    controller.NewBaseController(),
		SuggestionService: svc,
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

// Generate handles POST /suggestions/generate
// @Summary Generate activity suggestions for a day
// @Description Computes the day's free slots and generates one activity idea per slot
// @Tags Suggestions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateSuggestionsRequest true "Target day"
// @Success 200 {array} dto.SuggestionResponse
// @Failure 400 {object} errors.AppError
// @Router /suggestions/generate [post]
func (c *SuggestionController) Generate(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	var req dto.GenerateSuggestionsRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.SuggestionService.Generate(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions generated")
}

// List handles GET /suggestions
// @Summary List my suggestions
// @Tags Suggestions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SuggestionResponse
// @Router /suggestions [get]
func (c *SuggestionController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	result, appErr := c.SuggestionService.GetMySuggestions(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Suggestions retrieved")
}

func (c *SuggestionController) updateStatus(ctx echo.Context, fn func(context.Context, uuid.UUID, uuid.UUID) *errors.AppError, message string) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	suggestionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid suggestion id")
	}

	if appErr := fn(ctx.Request().Context(), userID, suggestionID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, message)
}

// Accept handles PUT /suggestions/:id/accept
// @Summary Accept a suggestion
// @Tags Suggestions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 200 {object} nil
// @Router /suggestions/{id}/accept [put]
func (c *SuggestionController) Accept(ctx echo.Context) error {
	return c.updateStatus(ctx, c.SuggestionService.Accept, "Suggestion accepted")
}

// Decline handles PUT /suggestions/:id/decline
// @Summary Decline a suggestion
// @Tags Suggestions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 200 {object} nil
// @Router /suggestions/{id}/decline [put]
func (c *SuggestionController) Decline(ctx echo.Context) error {
	return c.updateStatus(ctx, c.SuggestionService.Decline, "Suggestion declined")
}

// Rate handles PUT /suggestions/:id/rate
// @Summary Rate a suggestion
// @Tags Suggestions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Param request body dto.RateSuggestionRequest true "Rating 1-5"
// @Success 200 {object} nil
// @Router /suggestions/{id}/rate [put]
func (c *SuggestionController) Rate(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	suggestionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid suggestion id")
	}

	var req dto.RateSuggestionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	if appErr := c.SuggestionService.Rate(ctx.Request().Context(), userID, suggestionID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Suggestion rated")
}

// Share handles POST /suggestions/:id/share
// @Summary Create a public share link for a suggestion
// @Tags Suggestions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Suggestion ID"
// @Success 200 {object} dto.ShareResponse
// @Router /suggestions/{id}/share [post]
func (c *SuggestionController) Share(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, err.Error())
	}

	suggestionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid suggestion id")
	}

	result, appErr := c.SuggestionService.Share(ctx.Request().Context(), userID, suggestionID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Share link created")
}

// GetShared handles GET /public/suggestions/:slug
// @Summary View a shared suggestion
// @Tags Suggestions
// @Produce json
// @Param slug path string true "Share slug"
// @Success 200 {object} dto.SuggestionResponse
// @Failure 404 {object} errors.AppError
// @Router /public/suggestions/{slug} [get]
func (c *SuggestionController) GetShared(ctx echo.Context) error {
	shareSlug := ctx.Param("slug")
	if shareSlug == "" {
		return c.BadRequest(errors.ErrInvalidInput, "slug is required")
	}

	result, appErr := c.SuggestionService.GetShared(ctx.Request().Context(), shareSlug)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Shared suggestion retrieved")
}

// SearchPlaces handles GET /places/search
// @Summary Search nearby places
// @Description Proxies a place search for picking activity or event locations
// @Tags Suggestions
// @Produce json
// @Security BearerAuth
// @Param term query string true "Search term"
// @Param location query string true "Area to search"
// @Param limit query int false "Max results"
// @Success 200 {array} dto.PlaceResponse
// @Router /places/search [get]
func (c *SuggestionController) SearchPlaces(ctx echo.Context) error {
	var req dto.PlaceSearchRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid query parameters")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.SuggestionService.SearchPlaces(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Places retrieved")
}
