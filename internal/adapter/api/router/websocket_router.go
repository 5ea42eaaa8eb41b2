package router

import (
	"github.com/labstack/echo/v4"

	"ordernest/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the order-event stream. Authentication is
// handled inside the handler because browsers cannot set headers on
// WebSocket requests.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
