package router

import (
	"plansync/core/middleware"
	"plansync/modules/notification/controller"

	"github.com/labstack/echo/v4"
)

type NotificationRouter struct {
	NotificationController *controller.NotificationController
}

func NewNotificationRouter(notificationController *controller.NotificationController) *NotificationRouter {
	return &NotificationRouter{NotificationController: notificationController}
}

func (r *NotificationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	private := e.Group("/api/v1/private", mw.AuthMiddleware())

	notifications := private.Group("/notifications")
	notifications.GET("", r.NotificationController.List)
	notifications.GET("/unread-count", r.NotificationController.UnreadCount)
	notifications.PUT("/read-all", r.NotificationController.MarkAllRead)
	notifications.PUT("/:id/read", r.NotificationController.MarkRead)
}
