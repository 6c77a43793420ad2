package router

import (
	"plansync/core/middleware"
	"plansync/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{ScheduleController: scheduleController}
}

func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	private := e.Group("/api/v1/private", mw.AuthMiddleware())
	private.GET("/schedule/free-slots", r.ScheduleController.GetFreeSlots)
}
