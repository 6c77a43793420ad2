package middleware

import (
	"context"
	"strings"

	"plansync/core/constants"
	"plansync/core/errors"
	"plansync/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenChecker is the slice of the auth service the middleware needs.
type TokenChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type Middleware struct {
	tokens TokenChecker
}

func NewMiddleware(tokens TokenChecker) *Middleware {
	return &Middleware{tokens: tokens}
}

// AuthMiddleware validates the Bearer token and stores its claims in the
// request context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(401, errors.NewAppError(errors.ErrMissingAuthorizationHeader, "missing Authorization header", nil))
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				return echo.NewHTTPError(401, errors.NewAppError(errors.ErrInvalidTokenFormat, "expected Bearer token", nil))
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return echo.NewHTTPError(401, err)
			}

			if claims.Scope != constants.ScopeTokenAccess {
				return echo.NewHTTPError(401, errors.NewAppError(errors.ErrUnauthorized, "access token required", nil))
			}

			blacklisted, errCheck := m.tokens.IsTokenBlacklisted(c.Request().Context(), token)
			if errCheck != nil {
				return echo.NewHTTPError(500, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", errCheck))
			}
			if blacklisted {
				return echo.NewHTTPError(401, errors.NewAppError(errors.ErrUnauthorized, "token is blacklisted", nil))
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}
