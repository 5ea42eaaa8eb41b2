package router

import (
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/handler"
	"ordernest/internal/adapter/api/middleware"
)

func SetupOrderRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	accountMiddleware *middleware.AccountMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	orderHandler := handler.GetOrderHandler()

	// Customers submit against a form; everything else hangs off the order.
	submissions := e.Group("/v1/forms")
	submissions.Use(authMiddleware.Authenticate)
	submissions.Use(accountMiddleware.CustomerOnly)
	submissions.POST("/:id/submissions", orderHandler.SubmitOrder, rateLimitMiddleware.Limit("submit_order"))

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.POST("/:id/status", orderHandler.UpdateStatus)
	orders.GET("/:id/updates", orderHandler.GetTimeline)
	orders.POST("/:id/updates/:updateId/ack", orderHandler.AcknowledgeUpdate, accountMiddleware.CustomerOnly)
}
