package router

import (
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/handler"
	"ordernest/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
	auth.POST("/email-verification/sync", authHandler.SyncEmailVerification, authMiddleware.Authenticate)
}
