package router

import (
	"plansync/core/middleware"
	"plansync/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{CalendarController: calendarController}
}

func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	private := e.Group("/api/v1/private", mw.AuthMiddleware())

	calendar := private.Group("/calendar")
	calendar.GET("/google/auth-url", r.CalendarController.GetGoogleAuthURL)
	calendar.POST("/google/callback", r.CalendarController.GoogleCallback)
	calendar.GET("/connections", r.CalendarController.GetConnections)
	calendar.DELETE("/connections/:provider", r.CalendarController.Disconnect)

	events := private.Group("/events")
	events.POST("", r.CalendarController.CreateEvent)
	events.GET("", r.CalendarController.GetMyEvents)
	events.PUT("/:id", r.CalendarController.UpdateEvent)
	events.DELETE("/:id", r.CalendarController.DeleteEvent)
}
