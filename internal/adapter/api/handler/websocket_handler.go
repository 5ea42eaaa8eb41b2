package handler

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "ordernest/internal/infrastructure/websocket"
	"ordernest/pkg/errors"
	"ordernest/pkg/logger"
	"ordernest/pkg/response"
)

type WebSocketHandler struct {
	wsManager  *ws.Manager
	authClient *auth.Client
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, authClient *auth.Client) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:  wsManager,
		authClient: authClient,
	}
}

// HandleWebSocket upgrades the connection and streams order events to the
// authenticated user. Browsers cannot set headers on WebSocket requests, so
// the token may come via the "token" query parameter instead.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		authHeader := c.Request().Header.Get("Authorization")
		if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
			token = parts[1]
		}
	}
	if token == "" {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	decoded, err := h.authClient.VerifyIDToken(c.Request().Context(), token)
	if err != nil {
		return response.Error(c, errors.Unauthorized("Invalid token", err))
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed for %s: %v", decoded.UID, err)
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: decoded.UID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
