package router

import (
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/handler"
	"ordernest/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, accountMiddleware *middleware.AccountMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users/me")
	users.Use(authMiddleware.Authenticate)

	users.GET("", userHandler.GetProfile)
	users.PUT("", userHandler.UpdateProfile)
	users.PUT("/password", userHandler.UpdatePassword)

	// Subscription state is reported by the billing collaborator and only
	// applies to retailer accounts.
	users.PUT("/subscription", userHandler.UpdateSubscription, accountMiddleware.RetailerOnly)
}
