package collab

import (
	"plansync/core/database"
	"plansync/core/middleware"
	"plansync/core/storage"
	"plansync/modules/collab/controller"
	"plansync/modules/collab/repository"
	"plansync/modules/collab/router"
	"plansync/modules/collab/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, notifier service.Notifier, store storage.ObjectStore, mw *middleware.Middleware) service.CollabServiceInterface {
	repo := repository.NewCollabRepository(db)
	collabService := service.NewCollabService(repo, notifier, store)
	controller := controller.NewCollabController(collabService)

	router.NewCollabRouter(controller).Setup(e, mw)

	return collabService
}
