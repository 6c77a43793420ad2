package suggestion

import (
	"plansync/core/config"
	"plansync/core/database"
	"plansync/core/middleware"
	authservice "plansync/modules/auth/service"
	scheduleservice "plansync/modules/schedule/service"
	"plansync/modules/suggestion/controller"
	"plansync/modules/suggestion/repository"
	"plansync/modules/suggestion/router"
	"plansync/modules/suggestion/service"

	"github.com/labstack/echo/v4"
)

func Init(
	e *echo.Echo,
	db database.Database,
	scheduleService scheduleservice.ScheduleServiceInterface,
	authService authservice.AuthServiceInterface,
	cfg *config.Config,
	mw *middleware.Middleware,
) service.SuggestionServiceInterface {
	repo := repository.NewSuggestionRepository(db)
	suggestionService := service.NewSuggestionService(repo, scheduleService, authService, cfg)
	controller := controller.NewSuggestionController(suggestionService)

	router.NewSuggestionRouter(controller).Setup(e, mw)

	return suggestionService
}
