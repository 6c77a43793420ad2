package router

import (
	"plansync/core/middleware"
	"plansync/modules/collab/controller"

	"github.com/labstack/echo/v4"
)

type CollabRouter struct {
	CollabController *controller.CollabController
}

func NewCollabRouter(collabController *controller.CollabController) *CollabRouter {
	return &CollabRouter{CollabController: collabController}
}

func (r *CollabRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	private := e.Group("/api/v1/private", mw.AuthMiddleware())

	events := private.Group("/collab-events")
	events.POST("", r.CollabController.Create)
	events.GET("", r.CollabController.List)
	events.GET("/:id", r.CollabController.Detail)
	events.POST("/:id/invites", r.CollabController.Invite)
	events.PUT("/:id/respond", r.CollabController.Respond)
	events.POST("/:id/time-slots", r.CollabController.ProposeTimeSlot)
	events.POST("/:id/locations", r.CollabController.ProposeLocation)
	events.PUT("/:id/time-slots/:slotId/vote", r.CollabController.VoteTimeSlot)
	events.PUT("/:id/locations/:locationId/vote", r.CollabController.VoteLocation)
	events.POST("/:id/finalize", r.CollabController.Finalize)
	events.GET("/:id/export", r.CollabController.Export)
}
