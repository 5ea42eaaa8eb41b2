package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	accountMiddleware *middleware.AccountMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	authClient *auth.Client,
) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, accountMiddleware)
	SetupFormRouter(e, authMiddleware, accountMiddleware, rateLimitMiddleware, authClient)
	SetupOrderRouter(e, authMiddleware, accountMiddleware, rateLimitMiddleware)
	SetupFileRouter(e, authMiddleware, rateLimitMiddleware)
	SetupHealthRouter(e)
}
