package controller

import (
	"strings"

	"plansync/core/constants"
	"plansync/core/controller"
	"plansync/core/errors"
	"plansync/core/utils"
	"plansync/modules/auth/dto"
	"plansync/modules/auth/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(svc service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    svc,
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

func bearerToken(ctx echo.Context) string {
	header := ctx.Request().Header.Get("Authorization")
	token, _ := strings.CutPrefix(header, "Bearer ")
	return token
}

// Register handles POST /auth/register
// @Summary Register a new account
// @Description Create a user account with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Account info"
// @Success 200 {object} dto.RegisterResponse
// @Failure 400 {object} errors.AppError
// @Failure 409 {object} errors.AppError
// @Router /public/auth/register [post]
func (c *AuthController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.AuthService.Register(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Registered successfully")
}

// Login handles POST /auth/login
// @Summary Log in
// @Description Authenticate and receive access and refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/login [post]
func (c *AuthController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.AuthService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Logged in successfully")
}

// Logout handles POST /auth/logout
// @Summary Log out
// @Description Blacklist the current access token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.AppError
// @Router /private/auth/logout [post]
func (c *AuthController) Logout(ctx echo.Context) error {
	token := bearerToken(ctx)
	if token == "" {
		return c.Unauthorized(errors.ErrMissingAuthorizationHeader, "No token provided")
	}

	if appErr := c.AuthService.Logout(ctx.Request().Context(), token); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Logged out successfully")
}

// RefreshToken handles POST /auth/refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} errors.AppError
// @Router /public/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx echo.Context) error {
	var req dto.RefreshTokenRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.AuthService.RefreshToken(ctx.Request().Context(), req.RefreshToken)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Token refreshed")
}

// Me handles GET /auth/me
// @Summary Current user
// @Description Return the authenticated user's profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/auth/me [get]
func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AuthService.GetUserByID(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// SearchUsers handles GET /users/search
// @Summary Search users
// @Description Search users by username, for inviting to collaborative events
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} errors.AppError
// @Router /private/users/search [get]
func (c *AuthController) SearchUsers(ctx echo.Context) error {
	if _, err := getUserIDFromContext(ctx); err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	query := ctx.QueryParam("q")
	if query == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing search query")
	}

	result, appErr := c.AuthService.SearchUsers(ctx.Request().Context(), query)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdatePreferences handles PUT /users/preferences
// @Summary Update preferences
// @Description Update the authenticated user's activity preferences
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.AppError
// @Router /private/users/preferences [put]
func (c *AuthController) UpdatePreferences(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.AuthService.UpdatePreferences(ctx.Request().Context(), userID, &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Preferences updated")
}
