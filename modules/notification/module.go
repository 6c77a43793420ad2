package notification

import (
	"plansync/core/database"
	"plansync/core/middleware"
	"plansync/modules/notification/controller"
	"plansync/modules/notification/repository"
	"plansync/modules/notification/router"
	"plansync/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	notificationService := service.NewNotificationService(repo)
	controller := controller.NewNotificationController(notificationService)

	router.NewNotificationRouter(controller).Setup(e, mw)

	return notificationService
}
