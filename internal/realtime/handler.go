package realtime

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Handler terminates the websocket handshake: credential check first, then
// the protocol upgrade. A connection that fails authentication never touches
// the hub.
type Handler struct {
	hub       *Hub
	router    *Router
	jwtSecret string
}

func NewHandler(hub *Hub, router *Router, jwtSecret string) *Handler {
	return &Handler{
		hub:       hub,
		router:    router,
		jwtSecret: jwtSecret,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/ws", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *Handler) ServeWs(c *fiber.Ctx) error {
	// Token source priority: query param (browser standard), then
	// Authorization header (tooling/non-browser standard).
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	identity, err := VerifyToken(tokenStr, h.jwtSecret)
	if err != nil {
		if errors.Is(err, ErrMissingToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
		}
		h.hub.logger.Warn("Handler", "Invalid token in WS handshake", map[string]interface{}{
			"error": err.Error(),
		})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			client := NewClient(h.hub, conn, *identity)
			h.hub.register <- client

			go client.writePump()
			client.readPump(h.router) // blocks for the connection's lifetime
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
