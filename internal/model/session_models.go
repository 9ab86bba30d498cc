package model

import (
	"time"

	"github.com/google/uuid"
)

type TrainingSession struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;index:idx_sessions_user_started,priority:1"`
	Scenario    string    `gorm:"type:varchar(100);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'active';index"`
	StartedAt   time.Time `gorm:"not null;index:idx_sessions_user_started,priority:2"`
	CompletedAt *time.Time

	Messages []SessionMessage `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
	Scores   *SessionScore    `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}

type SessionMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_session_created,priority:1"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_session_created,priority:2"`
}

func (SessionMessage) TableName() string {
	return "session_messages"
}

type SessionScore struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CrisisRecognition float64   `gorm:"not null"`
	Empathy           float64   `gorm:"not null"`
	Appropriateness   float64   `gorm:"not null"`
	Deescalation      float64   `gorm:"not null"`
	Overall           float64   `gorm:"not null;index"`
	SkillLevel        string    `gorm:"type:varchar(20);not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
}

func (SessionScore) TableName() string {
	return "session_scores"
}
