package router

import (
	"plansync/core/middleware"
	"plansync/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public/auth")
	public.POST("/register", r.AuthController.Register)
	public.POST("/login", r.AuthController.Login)
	public.POST("/refresh", r.AuthController.RefreshToken)

	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/auth/logout", r.AuthController.Logout)
	private.GET("/auth/me", r.AuthController.Me)
	private.GET("/users/search", r.AuthController.SearchUsers)
	private.PUT("/users/preferences", r.AuthController.UpdatePreferences)
}
