package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/pkg/scoring"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, payload []byte) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestStartSessionCreatesOpeningMessage(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeLLM{reply: "Everything feels heavy today."}, &fakePublisher{})
	userID := uuid.New()

	res, err := svc.Start(context.Background(), userID, &dto.StartSessionRequest{Scenario: "friend going through a breakup"})
	require.NoError(t, err)

	assert.Equal(t, "active", res.Session.Status)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, scoring.RoleAssistant, res.Messages[0].Role)
	assert.Equal(t, "Everything feels heavy today.", res.Messages[0].Content)
}

func TestStartSessionFallsBackWhenLLMFails(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeLLM{err: errors.New("provider down")}, &fakePublisher{})

	res, err := svc.Start(context.Background(), uuid.New(), &dto.StartSessionRequest{Scenario: "exam stress"})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, fallbackOpening, res.Messages[0].Content)
}

func TestSendMessageAppendsBothSides(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeLLM{reply: "It just hurts."}, &fakePublisher{})
	userID := uuid.New()

	started, err := svc.Start(context.Background(), userID, &dto.StartSessionRequest{Scenario: "loss of a pet"})
	require.NoError(t, err)

	res, err := svc.SendMessage(context.Background(), userID, started.Session.Id, &dto.SendMessageRequest{Content: "I hear you, that sounds painful."})
	require.NoError(t, err)
	assert.Equal(t, scoring.RoleUser, res.UserMessage.Role)
	assert.Equal(t, scoring.RoleAssistant, res.ReplyMessage.Role)
	assert.Equal(t, "It just hurts.", res.ReplyMessage.Content)

	transcript, err := repo.GetTranscript(context.Background(), started.Session.Id)
	require.NoError(t, err)
	// Opening message plus the new exchange.
	assert.Len(t, transcript, 3)
}

func TestSendMessageRejectsForeignSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeLLM{reply: "x"}, &fakePublisher{})

	started, err := svc.Start(context.Background(), uuid.New(), &dto.StartSessionRequest{Scenario: "anything"})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), uuid.New(), started.Session.Id, &dto.SendMessageRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompletePublishesScoringMessage(t *testing.T) {
	repo := newFakeSessionRepo()
	pub := &fakePublisher{}
	svc := NewSessionService(repo, &fakeLLM{reply: "x"}, pub)
	userID := uuid.New()

	started, err := svc.Start(context.Background(), userID, &dto.StartSessionRequest{Scenario: "anything"})
	require.NoError(t, err)

	res, err := svc.Complete(context.Background(), userID, started.Session.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusCompleted), res.Status)
	require.NotNil(t, res.CompletedAt)

	require.Len(t, pub.payloads, 1)
	var msg dto.PublishScoreSessionMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, started.Session.Id, msg.SessionId)
	assert.Equal(t, userID, msg.UserId)

	// A second completion must be rejected, scoring happens once.
	_, err = svc.Complete(context.Background(), userID, started.Session.Id)
	assert.ErrorIs(t, err, ErrSessionCompleted)
}

func TestGetScoresBeforeScoring(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeLLM{reply: "x"}, &fakePublisher{})
	userID := uuid.New()

	started, err := svc.Start(context.Background(), userID, &dto.StartSessionRequest{Scenario: "anything"})
	require.NoError(t, err)

	_, err = svc.GetScores(context.Background(), userID, started.Session.Id)
	assert.ErrorIs(t, err, ErrSessionNotScored)
}
