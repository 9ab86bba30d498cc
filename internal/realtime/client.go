package realtime

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound buffer per connection. Overflow drops the connection.
	sendBufferSize = 256
)

// Client sits between one websocket connection and the hub. The Identity is
// established during the handshake and is the only source of truth for who
// sent an event; payload identity fields are overwritten from it.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	Identity Identity

	// Buffered channel of outbound messages.
	Send chan []byte

	// Rooms this connection belongs to, maintained by the hub under its lock.
	rooms map[string]struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, identity Identity) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		Identity: identity,
		Send:     make(chan []byte, sendBufferSize),
		rooms:    make(map[string]struct{}),
	}
}

// readPump pumps messages from the websocket connection to the router.
//
// The application runs readPump in a per-connection goroutine. All inbound
// events for one connection pass through here sequentially, which is what
// keeps per-sender ordering intact end to end.
func (c *Client) readPump(router *Router) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("Client", "Unexpected close", map[string]interface{}{
					"user_id": c.Identity.UserID,
					"error":   err.Error(),
				})
			}
			break
		}

		var event InboundEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			c.hub.logger.Warn("Client", "Dropping malformed frame", map[string]interface{}{
				"user_id": c.Identity.UserID,
			})
			continue
		}
		router.Dispatch(c, event)
	}
}

// writePump pumps messages from the hub to the websocket connection.
//
// A goroutine running writePump is started for each connection. The hub
// closes the Send channel on unregister, which is the signal to shut the
// socket down.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
