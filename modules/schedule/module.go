package schedule

import (
	"plansync/core/middleware"
	calendarservice "plansync/modules/calendar/service"
	"plansync/modules/schedule/controller"
	"plansync/modules/schedule/router"
	"plansync/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, calendarService calendarservice.CalendarServiceInterface, mw *middleware.Middleware) service.ScheduleServiceInterface {
	scheduleService := service.NewScheduleService(calendarService)
	controller := controller.NewScheduleController(scheduleService)

	router.NewScheduleRouter(controller).Setup(e, mw)

	return scheduleService
}
