package realtime

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const backplaneChannel = "realtime_events"

// Hub is the room registry: it owns every live connection and the mapping
// from room name to member set. All membership mutations and broadcast reads
// are serialized through its lock, so a broadcast always observes a
// consistent snapshot of a room.
type Hub struct {
	// Room name -> member set
	rooms map[string]map[*Client]struct{}

	// Connections currently admitted to the registry
	clients map[*Client]struct{}

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out (optional)
	rdb *redis.Client

	// Distinguishes our own backplane messages from siblings'
	instanceID string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]struct{}),
		clients:    make(map[*Client]struct{}),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start backplane subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToBackplane()
	}

	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.drop(client)
		}
	}
}

// add admits a connection and performs the automatic role-based joins: the
// home room always, helpers/admins depending on role. These memberships are
// never removed by leave events, only by disconnect.
func (h *Hub) add(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.joinLocked(client, RoomUser(client.Identity.UserID))
	if client.Identity.Role.IsHelperRole() {
		h.joinLocked(client, RoomHelpers)
	}
	if client.Identity.Role == entity.UserRoleAdmin {
		h.joinLocked(client, RoomAdmins)
	}
	h.mu.Unlock()

	h.logger.Info("Hub", "Client registered", map[string]interface{}{
		"user_id": client.Identity.UserID,
		"role":    client.Identity.Role,
	})
}

// drop tears a connection down: removed from every room it belongs to in one
// critical section, so no broadcast can see it half-removed. Idempotent.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for room := range client.rooms {
		h.leaveLocked(client, room)
	}
	close(client.Send)
	h.mu.Unlock()

	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
		"user_id": client.Identity.UserID,
	})
}

// Join adds the connection to a room. No error if already a member.
func (h *Hub) Join(client *Client, room string) {
	h.mu.Lock()
	h.joinLocked(client, room)
	h.mu.Unlock()
}

// Leave removes the connection from a room. No error if absent.
func (h *Hub) Leave(client *Client, room string) {
	h.mu.Lock()
	h.leaveLocked(client, room)
	h.mu.Unlock()
}

func (h *Hub) joinLocked(client *Client, room string) {
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[client] = struct{}{}
	client.rooms[room] = struct{}{}
}

func (h *Hub) leaveLocked(client *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(client.rooms, room)
}

// Broadcast delivers data to every current member of the room, skipping the
// originating connection when skip is non-nil. Delivery to a full client
// buffer drops that client rather than blocking the whole fan-out.
func (h *Hub) Broadcast(room string, data []byte, skip *Client) {
	h.deliverLocal(room, data, skip)

	if h.rdb != nil {
		payload, _ := json.Marshal(backplaneMessage{
			Origin:  h.instanceID,
			Room:    room,
			Message: data,
		})
		h.rdb.Publish(context.Background(), backplaneChannel, payload)
	}
}

func (h *Hub) deliverLocal(room string, data []byte, skip *Client) {
	var dropped []*Client

	h.mu.RLock()
	for client := range h.rooms[room] {
		if client == skip {
			continue
		}
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	// Hand slow clients to Run outside the read lock; drop() needs the write
	// lock and the unregister channel is unbuffered.
	for _, client := range dropped {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{
			"user_id": client.Identity.UserID,
		})
		h.unregister <- client
	}
}

type backplaneMessage struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Message json.RawMessage `json:"message"`
}

// subscribeToBackplane mirrors room broadcasts published by sibling
// processes. Messages from our own instance are ignored so local delivery is
// not duplicated.
func (h *Hub) subscribeToBackplane() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, backplaneChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload backplaneMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("backplane msg parse error: %v", err)
			continue
		}
		if payload.Origin == h.instanceID {
			continue
		}
		h.deliverLocal(payload.Room, payload.Message, nil)
	}
}

// ConnectionCount reports the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// MemberCount reports the size of a room's member set.
func (h *Hub) MemberCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// IsMember reports whether the connection currently belongs to the room.
func (h *Hub) IsMember(client *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[room][client]
	return ok
}

// StartHeartbeat logs connection/room counts on an interval. Diagnostic only.
func (h *Hub) StartHeartbeat(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			h.mu.RLock()
			connections, rooms := len(h.clients), len(h.rooms)
			h.mu.RUnlock()
			h.logger.Info("Hub", "Heartbeat", map[string]interface{}{
				"connections": connections,
				"rooms":       rooms,
			})
		}
	}()
}
