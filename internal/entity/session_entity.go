package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// TrainingSession is one simulated support conversation owned by a trainee.
type TrainingSession struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Scenario    string
	Status      SessionStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Messages    []SessionMessage
	Scores      *SessionScore
}

// SessionMessage is one transcript entry. Role follows the scoring engine
// convention: user / assistant / system.
type SessionMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Role      string
	Content   string
	CreatedAt time.Time
}

// SessionScore is the immutable scoring result, written exactly once per
// completed session.
type SessionScore struct {
	Id                uuid.UUID
	SessionId         uuid.UUID
	CrisisRecognition float64
	Empathy           float64
	Appropriateness   float64
	Deescalation      float64
	Overall           float64
	SkillLevel        string
	CreatedAt         time.Time
}
