package utils

import (
	stderrors "errors"
	"fmt"
	"time"

	"plansync/core/config"
	"plansync/core/constants"
	"plansync/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the custom JWT claims carried by access and refresh tokens.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Scope    string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed JWT for the given user and scope.
func GenerateToken(userID uuid.UUID, username string, scope string) (string, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not initialized")
	}

	expiryMins := cfg.JWT.AccessExpiryMins
	if scope == constants.ScopeTokenRefresh {
		expiryMins = cfg.JWT.RefreshExpiryMins
	}

	claims := &TokenClaims{
		UserID:   userID,
		Username: username,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryMins) * time.Minute)),
			Issuer:    "plansync",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateAndParseToken verifies signature and expiry and returns the claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}

	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", nil)
	}

	return claims, nil
}
