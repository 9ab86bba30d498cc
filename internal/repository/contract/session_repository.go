package contract

import (
	"context"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

// LeaderboardRow is one aggregated leaderboard entry.
type LeaderboardRow struct {
	UserId       uuid.UUID
	FullName     string
	SkillLevel   string
	SessionCount int64
	AverageScore float64
}

type SessionRepository interface {
	Create(ctx context.Context, session *entity.TrainingSession) error
	Update(ctx context.Context, session *entity.TrainingSession) error
	// FindOne loads the session with its ordered messages and scores.
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TrainingSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrainingSession, error)

	AppendMessage(ctx context.Context, message *entity.SessionMessage) error
	// GetTranscript returns the session's messages in chronological order.
	GetTranscript(ctx context.Context, sessionId uuid.UUID) ([]entity.SessionMessage, error)

	// SaveScores persists the scoring result exactly once per session.
	SaveScores(ctx context.Context, scores *entity.SessionScore) error
	GetScores(ctx context.Context, sessionId uuid.UUID) (*entity.SessionScore, error)

	Leaderboard(ctx context.Context, limit int) ([]LeaderboardRow, error)
}
