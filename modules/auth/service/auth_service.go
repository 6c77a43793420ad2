package service

import (
	"context"
	"fmt"

	"plansync/core/cache"
	"plansync/core/constants"
	"plansync/core/errors"
	"plansync/core/logger"
	"plansync/core/utils"
	"plansync/modules/auth/dto"
	"plansync/modules/auth/entity"
	"plansync/modules/auth/repository"

	"github.com/google/uuid"
)

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError)
	Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	RefreshToken(ctx context.Context, token string) (*dto.RefreshTokenResponse, *errors.AppError)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	SearchUsers(ctx context.Context, query string) ([]dto.UserResponse, *errors.AppError)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *dto.UpdatePreferencesRequest) *errors.AppError
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) AuthServiceInterface {
	return &AuthService{
		repo:  repo,
		cache: cache,
	}
}

func (service *AuthService) Register(ctx context.Context, requestData *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError) {
	existing, err := service.repo.GetUserByUsername(ctx, requestData.Username)
	if err != nil {
		logger.Error("AuthService:Register:GetUserByUsername:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check username", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "username already taken", nil)
	}

	hashed, err := utils.HashPassword(requestData.Password)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		Username: requestData.Username,
		Password: hashed,
		IsActive: true,
	}
	if requestData.Location != "" {
		user.Location = &requestData.Location
	}

	created, err := service.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("AuthService:Register:CreateUser:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create user", err)
	}

	return &dto.RegisterResponse{User: dto.ToUserResponse(created)}, nil
}

// Login authenticates a user and implements login attempt blocking to
// prevent brute force attacks.
func (service *AuthService) Login(ctx context.Context, requestData *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	loginKey := fmt.Sprintf("login:%s", requestData.Username)

	blocked, err := service.cache.IsLoginBlocked(ctx, loginKey)
	if err != nil {
		logger.Error("AuthService:Login:IsLoginBlocked:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get login attempt", err)
	}
	if blocked {
		errExpire := service.cache.Expire(ctx, loginKey, constants.BlockDuration)
		if errExpire != nil {
			logger.Error("AuthService:Login:Expire:Error:", errExpire)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "too many failed attempts, try again later", nil)
	}

	user, err := service.repo.GetUserByUsername(ctx, requestData.Username)
	if err != nil {
		logger.Error("AuthService:Login:GetUserByUsername:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	if !user.IsActive {
		if errIncrement := service.cache.IncrementLoginAttempt(ctx, loginKey); errIncrement != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error:", errIncrement)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "user not active", nil)
	}

	if !utils.ComparePassword(user.Password, requestData.Password) {
		if errIncrement := service.cache.IncrementLoginAttempt(ctx, loginKey); errIncrement != nil {
			logger.Error("AuthService:Login:IncrementLoginAttempt:Error:", errIncrement)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "incorrect password", nil)
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Username, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Username, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	if errDel := service.cache.Del(ctx, loginKey); errDel != nil {
		logger.Error("AuthService:Login:Del:Error:", errDel)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	}, nil
}

func (service *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	err := service.cache.AddToTokenBlacklist(ctx, token)
	if err != nil {
		logger.Error("AuthService:Logout:AddToBlacklist:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to add token to blacklist", err)
	}
	return nil
}

func (service *AuthService) RefreshToken(ctx context.Context, token string) (*dto.RefreshTokenResponse, *errors.AppError) {
	blacklisted, err := service.cache.IsTokenBlacklisted(ctx, token)
	if err != nil {
		logger.Error("AuthService:RefreshToken:IsTokenBlacklisted:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to check token blacklist", err)
	}
	if blacklisted {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token is blacklisted", nil)
	}

	claims, errParse := utils.ValidateAndParseToken(token)
	if errParse != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid refresh token", errParse)
	}
	if claims.Scope != constants.ScopeTokenRefresh {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "refresh token required", nil)
	}

	user, err := service.repo.GetUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", err)
	}

	accessToken, err := utils.GenerateToken(user.ID, user.Username, constants.ScopeTokenAccess)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate access token", err)
	}

	refreshToken, err := utils.GenerateToken(user.ID, user.Username, constants.ScopeTokenRefresh)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate refresh token", err)
	}

	// The old refresh token is single use.
	if errAdd := service.cache.AddToTokenBlacklist(ctx, token); errAdd != nil {
		logger.Error("AuthService:RefreshToken:AddToBlacklist:Error:", errAdd)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (service *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := service.repo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("AuthService:GetUserByID:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", nil)
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (service *AuthService) SearchUsers(ctx context.Context, query string) ([]dto.UserResponse, *errors.AppError) {
	users, err := service.repo.SearchUsers(ctx, query, 20)
	if err != nil {
		logger.Error("AuthService:SearchUsers:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to search users", err)
	}

	result := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, dto.ToUserResponse(&u))
	}
	return result, nil
}

func (service *AuthService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *dto.UpdatePreferencesRequest) *errors.AppError {
	prefs := &entity.UserPreferences{
		DietaryRestrictions: req.DietaryRestrictions,
		Interests:           req.Interests,
		ActivityTypes:       req.ActivityTypes,
	}

	if err := service.repo.UpdatePreferences(ctx, userID, prefs); err != nil {
		logger.Error("AuthService:UpdatePreferences:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to update preferences", err)
	}
	return nil
}

func (service *AuthService) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return service.cache.IsTokenBlacklisted(ctx, token)
}
