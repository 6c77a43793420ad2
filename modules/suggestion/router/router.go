package router

import (
	"plansync/core/middleware"
	"plansync/modules/suggestion/controller"

	"github.com/labstack/echo/v4"
)

type SuggestionRouter struct {
	SuggestionController *controller.SuggestionController
}

func NewSuggestionRouter(suggestionController *controller.SuggestionController) *SuggestionRouter {
	return &SuggestionRouter{SuggestionController: suggestionController}
}

func (r *SuggestionRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	v1.GET("/public/suggestions/:slug", r.SuggestionController.GetShared)

	private := v1.Group("/private", mw.AuthMiddleware())

	suggestions := private.Group("/suggestions")
	suggestions.POST("/generate", r.SuggestionController.Generate)
	suggestions.GET("", r.SuggestionController.List)
	suggestions.PUT("/:id/accept", r.SuggestionController.Accept)
	suggestions.PUT("/:id/decline", r.SuggestionController.Decline)
	suggestions.PUT("/:id/rate", r.SuggestionController.Rate)
	suggestions.POST("/:id/share", r.SuggestionController.Share)

	private.GET("/places/search", r.SuggestionController.SearchPlaces)
}
