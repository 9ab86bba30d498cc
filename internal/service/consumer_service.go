package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/memory"
	"peer-support-be/pkg/scoring"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the scoring worker. It picks up completed sessions from
// the bus, runs the heuristic scorer over the transcript and persists the
// result plus the user's new skill level.
type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	sessionRepo      contract.SessionRepository
	userRepo         contract.UserRepository
	leaderboardCache *memory.LeaderboardCache
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sessionRepo contract.SessionRepository,
	userRepo contract.UserRepository,
	leaderboardCache *memory.LeaderboardCache,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		sessionRepo:      sessionRepo,
		userRepo:         userRepo,
		leaderboardCache: leaderboardCache,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishScoreSessionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal scoring message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Scoring session %s", payload.SessionId)

	existing, err := cs.sessionRepo.GetScores(ctx, payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Failed to check existing scores for %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}
	if existing != nil {
		// Redelivery after a crash between persist and ack. Scores are
		// written exactly once, so just ack.
		msg.Ack()
		return
	}

	transcript, err := cs.sessionRepo.GetTranscript(ctx, payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Failed to load transcript for %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	input := make([]scoring.Message, 0, len(transcript))
	for _, m := range transcript {
		input = append(input, scoring.Message{Role: m.Role, Content: m.Content})
	}

	result := scoring.CalculateScores(input)
	level := scoring.SkillLevel(result.Overall)

	record := &entity.SessionScore{
		Id:                uuid.New(),
		SessionId:         payload.SessionId,
		CrisisRecognition: result.CrisisRecognition,
		Empathy:           result.Empathy,
		Appropriateness:   result.Appropriateness,
		Deescalation:      result.Deescalation,
		Overall:           result.Overall,
		SkillLevel:        level,
		CreatedAt:         time.Now(),
	}
	if err := cs.sessionRepo.SaveScores(ctx, record); err != nil {
		log.Printf("[ERROR] Failed to save scores for %s: %v", payload.SessionId, err)
		msg.Nack()
		return
	}

	if err := cs.userRepo.UpdateSkillLevel(ctx, payload.UserId, level); err != nil {
		log.Printf("[ERROR] Failed to update skill level for user %s: %v", payload.UserId, err)
		msg.Nack()
		return
	}

	cs.leaderboardCache.Invalidate()

	log.Printf("[SUCCESS] Session %s scored %.2f (%s)", payload.SessionId, result.Overall, level)
	msg.Ack()
}
