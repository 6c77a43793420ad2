package calendar

import (
	"plansync/core/cache"
	"plansync/core/database"
	"plansync/core/middleware"
	"plansync/modules/calendar/controller"
	"plansync/modules/calendar/repository"
	"plansync/modules/calendar/router"
	"plansync/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, cache cache.Cache, mw *middleware.Middleware) service.CalendarServiceInterface {
	repo := repository.NewCalendarRepository(db)
	calendarService := service.NewCalendarService(repo, cache)
	controller := controller.NewCalendarController(calendarService)

	router.NewCalendarRouter(controller).Setup(e, mw)

	return calendarService
}
