package auth

import (
	"plansync/core/cache"
	"plansync/core/database"
	"plansync/core/middleware"
	"plansync/modules/auth/controller"
	"plansync/modules/auth/repository"
	"plansync/modules/auth/router"
	"plansync/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, cache cache.Cache) (service.AuthServiceInterface, *middleware.Middleware) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, cache)
	controller := controller.NewAuthController(authService)
	mw := middleware.NewMiddleware(authService)

	router.NewAuthRouter(controller).Setup(e, mw)

	return authService, mw
}

// GetService creates an AuthService instance for use by other modules
func GetService(db database.Database, cache cache.Cache) service.AuthServiceInterface {
	repo := repository.NewAuthRepository(db)
	return service.NewAuthService(repo, cache)
}
