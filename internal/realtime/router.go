package realtime

import (
	"encoding/json"
	"time"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/pkg/logger"
)

// AlertSink receives crisis alerts after they have been broadcast, for
// persistence and downstream escalation. The router never blocks on it.
type AlertSink interface {
	HandleAlert(alert CrisisAlert)
}

// Router maps inbound event types onto hub operations. The dispatch table is
// fixed; unknown types are ignored without feedback so protocol additions do
// not break older servers.
type Router struct {
	hub    *Hub
	sink   AlertSink
	logger logger.ILogger
}

func NewRouter(hub *Hub, sink AlertSink, log logger.ILogger) *Router {
	return &Router{
		hub:    hub,
		sink:   sink,
		logger: log,
	}
}

// Dispatch routes one inbound event from an authenticated connection. Every
// relayed payload has its identity fields overwritten from the connection, so
// a client cannot impersonate another user by spoofing payload fields.
func (r *Router) Dispatch(sender *Client, event InboundEvent) {
	switch event.Type {
	case EventSessionMessage:
		r.relayToSession(sender, event, "user_id")
	case EventSupportMessage:
		r.relayToSession(sender, event, "sender_id")
	case EventTypingStart, EventTypingStop:
		r.relayToSession(sender, event, "user_id")
	case EventJoinSession:
		if room, ok := r.sessionRoom(sender, event); ok {
			r.hub.Join(sender, room)
		}
	case EventLeaveSession:
		if room, ok := r.sessionRoom(sender, event); ok {
			r.hub.Leave(sender, room)
		}
	case EventCrisisDetected:
		r.escalateCrisis(sender, event)
	default:
		// Unknown event type, drop without feedback.
	}
}

// sessionRoom extracts and validates the session_id payload field. Events
// without it are dropped and logged; they cannot be routed anywhere.
func (r *Router) sessionRoom(sender *Client, event InboundEvent) (string, bool) {
	sessionID, ok := event.Payload["session_id"].(string)
	if !ok || sessionID == "" {
		r.logger.Warn("Router", "Dropping event without session_id", map[string]interface{}{
			"type":    event.Type,
			"user_id": sender.Identity.UserID,
		})
		return "", false
	}
	return RoomSession(sessionID), true
}

func (r *Router) relayToSession(sender *Client, event InboundEvent, identityField string) {
	room, ok := r.sessionRoom(sender, event)
	if !ok {
		return
	}

	if event.Payload == nil {
		event.Payload = map[string]interface{}{}
	}
	event.Payload[identityField] = sender.Identity.UserID.String()

	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	r.hub.Broadcast(room, data, sender)
}

// escalateCrisis fans a crisis event out to the helpers room and hands the
// enriched alert to the sink. The sender is always excluded from the
// broadcast, even when they are a helper themselves.
func (r *Router) escalateCrisis(sender *Client, event InboundEvent) {
	sessionID, ok := event.Payload["session_id"].(string)
	if !ok || sessionID == "" {
		r.logger.Warn("Router", "Dropping crisis event without session_id", map[string]interface{}{
			"user_id": sender.Identity.UserID,
		})
		return
	}

	severity := entity.SeverityHigh
	if s, ok := event.Payload["severity"].(string); ok && s != "" {
		severity = entity.CrisisSeverity(s)
	}
	message, _ := event.Payload["message"].(string)

	alert := CrisisAlert{
		UserID:    sender.Identity.UserID,
		SessionID: sessionID,
		Severity:  severity,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	r.logger.Error("Router", "Crisis detected", map[string]interface{}{
		"user_id":    alert.UserID,
		"session_id": alert.SessionID,
		"severity":   alert.Severity,
	})

	data, err := json.Marshal(InboundEvent{
		Type: EventCrisisDetected,
		Payload: map[string]interface{}{
			"user_id":    alert.UserID.String(),
			"session_id": alert.SessionID,
			"severity":   string(alert.Severity),
			"message":    alert.Message,
			"timestamp":  alert.Timestamp.Format(time.RFC3339),
		},
	})
	if err != nil {
		return
	}
	r.hub.Broadcast(RoomHelpers, data, sender)

	if r.sink != nil {
		r.sink.HandleAlert(alert)
	}
}
