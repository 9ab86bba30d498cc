package realtime

import (
	"time"

	"peer-support-be/internal/entity"

	"github.com/google/uuid"
)

// Inbound event type tags. Unknown tags are ignored by the router so newer
// clients can speak to older servers.
const (
	EventSessionMessage = "session_message"
	EventSupportMessage = "support_message"
	EventTypingStart    = "typing_start"
	EventTypingStop     = "typing_stop"
	EventCrisisDetected = "crisis_detected"
	EventJoinSession    = "join_session"
	EventLeaveSession   = "leave_session"
)

// Structural rooms. Membership is derived from role at authentication time,
// never from explicit join/leave events.
const (
	RoomHelpers = "helpers"
	RoomAdmins  = "admins"
)

// RoomUser is the home room for direct delivery to one user.
func RoomUser(id uuid.UUID) string {
	return "user:" + id.String()
}

// RoomSession is the dynamic per-session room joined and left by events.
func RoomSession(sessionID string) string {
	return "session:" + sessionID
}

// InboundEvent is the wire shape of a client event. Identity fields inside
// Payload are never trusted; the router overwrites them from the connection.
type InboundEvent struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

// CrisisAlert is the enriched payload broadcast to the helpers room. The
// timestamp is generated server-side at routing time so a skewed or hostile
// client clock cannot forge detection times.
type CrisisAlert struct {
	UserID    uuid.UUID             `json:"user_id"`
	SessionID string                `json:"session_id"`
	Severity  entity.CrisisSeverity `json:"severity"`
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
}
