package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/memory"
	"peer-support-be/pkg/scoring"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScoringMessage(t *testing.T, sessionID, userID uuid.UUID) *message.Message {
	t.Helper()
	payload, err := json.Marshal(dto.PublishScoreSessionMessage{
		SessionId: sessionID,
		UserId:    userID,
	})
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), payload)
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	case <-time.After(time.Second):
		t.Fatal("expected message to be acked")
	}
}

func TestProcessMessageScoresSession(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	userRepo := newFakeUserRepo()
	cache := memory.NewLeaderboardCache()

	sessionID := uuid.New()
	userID := uuid.New()
	sessionRepo.transcripts[sessionID] = []entity.SessionMessage{
		{SessionId: sessionID, Role: scoring.RoleUser, Content: "I feel like I might hurt myself, are you okay talking about this?"},
		{SessionId: sessionID, Role: scoring.RoleAssistant, Content: "I hear you, that sounds incredibly difficult. Let's take it slow, one step at a time."},
		{SessionId: sessionID, Role: scoring.RoleUser, Content: "okay, thanks, that helps"},
	}

	cs := &consumerService{
		sessionRepo:      sessionRepo,
		userRepo:         userRepo,
		leaderboardCache: cache,
	}

	msg := newScoringMessage(t, sessionID, userID)
	cs.processMessage(context.Background(), msg)
	assertAcked(t, msg)

	saved := sessionRepo.scores[sessionID]
	require.NotNil(t, saved)
	assert.Equal(t, sessionID, saved.SessionId)
	assert.Equal(t, 0.6, saved.Overall)
	assert.Equal(t, "intermediate", saved.SkillLevel)
	assert.Equal(t, "intermediate", userRepo.skillLevels[userID])
}

func TestProcessMessageIsIdempotent(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	userRepo := newFakeUserRepo()
	cache := memory.NewLeaderboardCache()

	sessionID := uuid.New()
	userID := uuid.New()
	existing := &entity.SessionScore{Id: uuid.New(), SessionId: sessionID, Overall: 0.42, SkillLevel: "intermediate"}
	sessionRepo.scores[sessionID] = existing

	cs := &consumerService{
		sessionRepo:      sessionRepo,
		userRepo:         userRepo,
		leaderboardCache: cache,
	}

	msg := newScoringMessage(t, sessionID, userID)
	cs.processMessage(context.Background(), msg)
	assertAcked(t, msg)

	// Redelivery must not rewrite the stored result or touch the user.
	assert.Equal(t, existing, sessionRepo.scores[sessionID])
	assert.Empty(t, userRepo.skillLevels)
}

func TestProcessMessageAcksMalformedPayload(t *testing.T) {
	cs := &consumerService{
		sessionRepo:      newFakeSessionRepo(),
		userRepo:         newFakeUserRepo(),
		leaderboardCache: memory.NewLeaderboardCache(),
	}

	msg := message.NewMessage(watermill.NewUUID(), []byte("{not json"))
	cs.processMessage(context.Background(), msg)
	assertAcked(t, msg)
}

func TestProcessMessageInvalidatesLeaderboardCache(t *testing.T) {
	sessionRepo := newFakeSessionRepo()
	cache := memory.NewLeaderboardCache()
	cache.Save(nil)

	sessionID := uuid.New()
	sessionRepo.transcripts[sessionID] = []entity.SessionMessage{
		{SessionId: sessionID, Role: scoring.RoleUser, Content: "how are you today"},
	}

	cs := &consumerService{
		sessionRepo:      sessionRepo,
		userRepo:         newFakeUserRepo(),
		leaderboardCache: cache,
	}

	msg := newScoringMessage(t, sessionID, uuid.New())
	cs.processMessage(context.Background(), msg)
	assertAcked(t, msg)

	_, found := cache.Get()
	assert.False(t, found, "scoring must invalidate the cached leaderboard")
}
