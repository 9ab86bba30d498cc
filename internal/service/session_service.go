package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/specification"
	"peer-support-be/pkg/llm"
	"peer-support-be/pkg/scoring"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrSessionNotScored = errors.New("session has not been scored yet")
)

type ISessionService interface {
	Start(ctx context.Context, userID uuid.UUID, req *dto.StartSessionRequest) (*dto.SessionDetailResponse, error)
	SendMessage(ctx context.Context, userID, sessionID uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Complete(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionResponse, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionDetailResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]dto.SessionResponse, error)
	GetScores(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionScoresDTO, error)
}

type sessionService struct {
	sessionRepo      contract.SessionRepository
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
}

func NewSessionService(sessionRepo contract.SessionRepository, llmProvider llm.LLMProvider, publisherService IPublisherService) ISessionService {
	return &sessionService{
		sessionRepo:      sessionRepo,
		llmProvider:      llmProvider,
		publisherService: publisherService,
	}
}

// personaPrompt frames the model as the person in distress so the trainee
// practices the supporter side of the conversation.
func personaPrompt(scenario string) string {
	return fmt.Sprintf(`You are roleplaying a person going through a difficult moment in a peer-support training exercise.
Scenario: %s
Stay in character. Respond briefly and emotionally, the way a person in distress would.
Never give advice and never break character.`, scenario)
}

const fallbackOpening = "I... I don't really know where to start. Things have been really hard lately."

func (s *sessionService) Start(ctx context.Context, userID uuid.UUID, req *dto.StartSessionRequest) (*dto.SessionDetailResponse, error) {
	session := &entity.TrainingSession{
		Id:        uuid.New(),
		UserId:    userID,
		Scenario:  req.Scenario,
		Status:    entity.SessionStatusActive,
		StartedAt: time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	// Opening line from the simulated person. A provider failure degrades to
	// a canned opener instead of failing the request.
	opening, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: scoring.RoleSystem, Content: personaPrompt(req.Scenario)},
		{Role: scoring.RoleUser, Content: "Please begin the conversation."},
	}, llm.WithTemperature(0.8))
	if err != nil || opening == "" {
		opening = fallbackOpening
	}

	openingMsg := &entity.SessionMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      scoring.RoleAssistant,
		Content:   opening,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.AppendMessage(ctx, openingMsg); err != nil {
		return nil, err
	}

	return &dto.SessionDetailResponse{
		Session:  toSessionResponse(session),
		Messages: []dto.SessionMessageDTO{toMessageDTO(openingMsg)},
	}, nil
}

func (s *sessionService) SendMessage(ctx context.Context, userID, sessionID uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == entity.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	userMsg := &entity.SessionMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      scoring.RoleUser,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.AppendMessage(ctx, userMsg); err != nil {
		return nil, err
	}

	transcript, err := s.sessionRepo.GetTranscript(ctx, session.Id)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(transcript)+1)
	history = append(history, llm.Message{Role: scoring.RoleSystem, Content: personaPrompt(session.Scenario)})
	for _, m := range transcript {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.8))
	if err != nil || reply == "" {
		reply = "I'm sorry... it's hard to put into words."
	}

	replyMsg := &entity.SessionMessage{
		Id:        uuid.New(),
		SessionId: session.Id,
		Role:      scoring.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	}
	if err := s.sessionRepo.AppendMessage(ctx, replyMsg); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		UserMessage:  toMessageDTO(userMsg),
		ReplyMessage: toMessageDTO(replyMsg),
	}, nil
}

func (s *sessionService) Complete(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == entity.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	now := time.Now()
	session.Status = entity.SessionStatusCompleted
	session.CompletedAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	// Hand the completed session to the scoring worker.
	payload, _ := json.Marshal(dto.PublishScoreSessionMessage{
		SessionId: session.Id,
		UserId:    session.UserId,
	})
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		return nil, err
	}

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *sessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionDetailResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	messages := make([]dto.SessionMessageDTO, 0, len(session.Messages))
	for i := range session.Messages {
		messages = append(messages, toMessageDTO(&session.Messages[i]))
	}

	resp := &dto.SessionDetailResponse{
		Session:  toSessionResponse(session),
		Messages: messages,
	}
	if session.Scores != nil {
		scoresDTO := toScoresDTO(session.Scores)
		resp.Scores = &scoresDTO
	}
	return resp, nil
}

func (s *sessionService) List(ctx context.Context, userID uuid.UUID) ([]dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.FindAll(ctx,
		specification.ByUserId{UserId: userID},
		specification.OrderBy{Clause: "started_at DESC"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, toSessionResponse(session))
	}
	return out, nil
}

func (s *sessionService) GetScores(ctx context.Context, userID, sessionID uuid.UUID) (*dto.SessionScoresDTO, error) {
	if _, err := s.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	scores, err := s.sessionRepo.GetScores(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		return nil, ErrSessionNotScored
	}
	scoresDTO := toScoresDTO(scores)
	return &scoresDTO, nil
}

func (s *sessionService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*entity.TrainingSession, error) {
	session, err := s.sessionRepo.FindOne(ctx, specification.ById{Id: sessionID})
	if err != nil {
		return nil, err
	}
	// Ownership check doubles as a not-found response so session ids cannot
	// be probed across accounts.
	if session == nil || session.UserId != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func toSessionResponse(session *entity.TrainingSession) dto.SessionResponse {
	return dto.SessionResponse{
		Id:          session.Id,
		Scenario:    session.Scenario,
		Status:      string(session.Status),
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
	}
}

func toMessageDTO(msg *entity.SessionMessage) dto.SessionMessageDTO {
	return dto.SessionMessageDTO{
		Id:        msg.Id,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func toScoresDTO(scores *entity.SessionScore) dto.SessionScoresDTO {
	return dto.SessionScoresDTO{
		CrisisRecognition: scores.CrisisRecognition,
		Empathy:           scores.Empathy,
		Appropriateness:   scores.Appropriateness,
		Deescalation:      scores.Deescalation,
		Overall:           scores.Overall,
		SkillLevel:        scores.SkillLevel,
	}
}
