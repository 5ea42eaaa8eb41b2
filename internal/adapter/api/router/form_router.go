package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/handler"
	"ordernest/internal/adapter/api/middleware"
)

func SetupFormRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	accountMiddleware *middleware.AccountMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	authClient *auth.Client,
) {
	formHandler := handler.GetFormHandler()

	// Public lookup: anonymous viewers see active forms only, the owner
	// also sees drafts when a token is presented.
	public := e.Group("/v1/forms")
	public.GET("/:id", formHandler.GetForm, VerifyToken(authClient))

	// Management routes are retailer-only.
	forms := e.Group("/v1/forms")
	forms.Use(authMiddleware.Authenticate)
	forms.Use(accountMiddleware.RetailerOnly)

	forms.POST("", formHandler.CreateForm, rateLimitMiddleware.Limit("create_form"))
	forms.GET("", formHandler.ListMyForms)
	forms.PUT("/:id", formHandler.UpdateForm)
	forms.PATCH("/:id/active", formHandler.SetFormActive)
	forms.DELETE("/:id", formHandler.DeleteForm)
}
