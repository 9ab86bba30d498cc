package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	Scenario string `json:"scenario" validate:"required,min=3"`
}

type SessionResponse struct {
	Id          uuid.UUID  `json:"id"`
	Scenario    string     `json:"scenario"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

type SessionMessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageResponse struct {
	UserMessage  SessionMessageDTO `json:"user_message"`
	ReplyMessage SessionMessageDTO `json:"reply_message"`
}

type SessionDetailResponse struct {
	Session  SessionResponse     `json:"session"`
	Messages []SessionMessageDTO `json:"messages"`
	Scores   *SessionScoresDTO   `json:"scores,omitempty"`
}

// PublishScoreSessionMessage is the bus payload that triggers scoring after
// a session completes.
type PublishScoreSessionMessage struct {
	SessionId uuid.UUID `json:"session_id"`
	UserId    uuid.UUID `json:"user_id"`
}

type SessionScoresDTO struct {
	CrisisRecognition float64 `json:"crisisRecognition"`
	Empathy           float64 `json:"empathy"`
	Appropriateness   float64 `json:"appropriateness"`
	Deescalation      float64 `json:"deescalation"`
	Overall           float64 `json:"overall"`
	SkillLevel        string  `json:"skill_level"`
}
