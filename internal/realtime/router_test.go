package realtime

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	alerts []CrisisAlert
}

func (s *recordingSink) HandleAlert(alert CrisisAlert) {
	s.alerts = append(s.alerts, alert)
}

func newTestRouter(t *testing.T) (*Hub, *Router, *recordingSink) {
	t.Helper()
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "realtime.log"))
	hub := NewHub(nil, log)
	sink := &recordingSink{}
	return hub, NewRouter(hub, sink, log), sink
}

func receiveEvent(t *testing.T, c *Client) InboundEvent {
	t.Helper()
	select {
	case raw := <-c.Send:
		var event InboundEvent
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	default:
		t.Fatal("expected a delivered event")
		return InboundEvent{}
	}
}

func TestDispatchSessionMessageOverwritesIdentity(t *testing.T) {
	hub, router, _ := newTestRouter(t)
	sender := newTestClient(hub, entity.UserRoleUser)
	receiver := newTestClient(hub, entity.UserRoleHelper)
	hub.add(sender)
	hub.add(receiver)
	hub.Join(sender, RoomSession("s1"))
	hub.Join(receiver, RoomSession("s1"))

	router.Dispatch(sender, InboundEvent{
		Type: EventSessionMessage,
		Payload: map[string]interface{}{
			"session_id": "s1",
			"content":    "hi there",
			"user_id":    "someone-else", // spoof attempt
		},
	})

	event := receiveEvent(t, receiver)
	assert.Equal(t, EventSessionMessage, event.Type)
	assert.Equal(t, sender.Identity.UserID.String(), event.Payload["user_id"])
	assert.Equal(t, "hi there", event.Payload["content"])
	assert.Empty(t, sender.Send, "sender must not receive its own message")
}

func TestDispatchSupportMessageInjectsSenderId(t *testing.T) {
	hub, router, _ := newTestRouter(t)
	sender := newTestClient(hub, entity.UserRoleHelper)
	receiver := newTestClient(hub, entity.UserRoleUser)
	hub.add(sender)
	hub.add(receiver)
	hub.Join(sender, RoomSession("s1"))
	hub.Join(receiver, RoomSession("s1"))

	router.Dispatch(sender, InboundEvent{
		Type:    EventSupportMessage,
		Payload: map[string]interface{}{"session_id": "s1", "content": "you are not alone"},
	})

	event := receiveEvent(t, receiver)
	assert.Equal(t, sender.Identity.UserID.String(), event.Payload["sender_id"])
}

func TestDispatchTypingEvents(t *testing.T) {
	hub, router, _ := newTestRouter(t)
	sender := newTestClient(hub, entity.UserRoleUser)
	receiver := newTestClient(hub, entity.UserRoleHelper)
	hub.add(sender)
	hub.add(receiver)
	hub.Join(sender, RoomSession("s1"))
	hub.Join(receiver, RoomSession("s1"))

	for _, eventType := range []string{EventTypingStart, EventTypingStop} {
		router.Dispatch(sender, InboundEvent{
			Type:    eventType,
			Payload: map[string]interface{}{"session_id": "s1"},
		})
		event := receiveEvent(t, receiver)
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, sender.Identity.UserID.String(), event.Payload["user_id"])
	}
}

func TestDispatchJoinAndLeaveSession(t *testing.T) {
	hub, router, _ := newTestRouter(t)
	client := newTestClient(hub, entity.UserRoleUser)
	hub.add(client)

	router.Dispatch(client, InboundEvent{
		Type:    EventJoinSession,
		Payload: map[string]interface{}{"session_id": "s1"},
	})
	assert.True(t, hub.IsMember(client, RoomSession("s1")))

	router.Dispatch(client, InboundEvent{
		Type:    EventLeaveSession,
		Payload: map[string]interface{}{"session_id": "s1"},
	})
	assert.False(t, hub.IsMember(client, RoomSession("s1")))
}

func TestDispatchDropsEventWithoutSessionId(t *testing.T) {
	hub, router, _ := newTestRouter(t)
	sender := newTestClient(hub, entity.UserRoleUser)
	receiver := newTestClient(hub, entity.UserRoleUser)
	hub.add(sender)
	hub.add(receiver)
	hub.Join(receiver, RoomSession("s1"))

	router.Dispatch(sender, InboundEvent{
		Type:    EventSessionMessage,
		Payload: map[string]interface{}{"content": "lost"},
	})
	assert.Empty(t, receiver.Send)

	router.Dispatch(sender, InboundEvent{Type: EventJoinSession, Payload: map[string]interface{}{}})
	assert.Len(t, sender.rooms, 1, "a join without session_id must not add any room")
}

func TestDispatchIgnoresUnknownType(t *testing.T) {
	hub, router, _ := newTestRouter(t)
	client := newTestClient(hub, entity.UserRoleUser)
	hub.add(client)

	router.Dispatch(client, InboundEvent{
		Type:    "made_up_event",
		Payload: map[string]interface{}{"session_id": "s1"},
	})
	assert.Empty(t, client.Send)
	assert.False(t, hub.IsMember(client, RoomSession("s1")))
}

func TestCrisisReachesHelpersNotSender(t *testing.T) {
	hub, router, sink := newTestRouter(t)
	// The sender is a helper too, so they sit in the helpers room themselves.
	sender := newTestClient(hub, entity.UserRoleHelper)
	helper := newTestClient(hub, entity.UserRoleCounselor)
	bystander := newTestClient(hub, entity.UserRoleUser)
	hub.add(sender)
	hub.add(helper)
	hub.add(bystander)

	router.Dispatch(sender, InboundEvent{
		Type: EventCrisisDetected,
		Payload: map[string]interface{}{
			"session_id": "s1",
			"severity":   "critical",
			"message":    "i want to hurt myself",
		},
	})

	event := receiveEvent(t, helper)
	assert.Equal(t, EventCrisisDetected, event.Type)
	assert.Equal(t, sender.Identity.UserID.String(), event.Payload["user_id"])
	assert.Equal(t, "s1", event.Payload["session_id"])
	assert.Equal(t, "critical", event.Payload["severity"])
	assert.NotEmpty(t, event.Payload["timestamp"])

	assert.Empty(t, sender.Send, "sender must never receive their own crisis alert")
	assert.Empty(t, bystander.Send)

	require.Len(t, sink.alerts, 1)
	alert := sink.alerts[0]
	assert.Equal(t, sender.Identity.UserID, alert.UserID)
	assert.Equal(t, entity.SeverityCritical, alert.Severity)
	assert.WithinDuration(t, time.Now().UTC(), alert.Timestamp, 5*time.Second)
}

func TestCrisisDefaultsSeverityHigh(t *testing.T) {
	hub, router, sink := newTestRouter(t)
	sender := newTestClient(hub, entity.UserRoleUser)
	hub.add(sender)

	router.Dispatch(sender, InboundEvent{
		Type:    EventCrisisDetected,
		Payload: map[string]interface{}{"session_id": "s1", "message": "help"},
	})

	require.Len(t, sink.alerts, 1)
	assert.Equal(t, entity.SeverityHigh, sink.alerts[0].Severity)
}

func TestCrisisWithoutSessionIdIsDropped(t *testing.T) {
	hub, router, sink := newTestRouter(t)
	sender := newTestClient(hub, entity.UserRoleUser)
	helper := newTestClient(hub, entity.UserRoleHelper)
	hub.add(sender)
	hub.add(helper)

	router.Dispatch(sender, InboundEvent{
		Type:    EventCrisisDetected,
		Payload: map[string]interface{}{"message": "help"},
	})

	assert.Empty(t, helper.Send)
	assert.Empty(t, sink.alerts)
}
