package mapper

import (
	"peer-support-be/internal/entity"
	"peer-support-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.TrainingSession) *entity.TrainingSession {
	if s == nil {
		return nil
	}
	out := &entity.TrainingSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Scenario:    s.Scenario,
		Status:      entity.SessionStatus(s.Status),
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
		Scores:      m.ScoreToEntity(s.Scores),
	}
	for _, msg := range s.Messages {
		out.Messages = append(out.Messages, *m.MessageToEntity(&msg))
	}
	return out
}

func (m *SessionMapper) ToModel(s *entity.TrainingSession) *model.TrainingSession {
	if s == nil {
		return nil
	}
	out := &model.TrainingSession{
		Id:          s.Id,
		UserId:      s.UserId,
		Scenario:    s.Scenario,
		Status:      string(s.Status),
		StartedAt:   s.StartedAt,
		CompletedAt: s.CompletedAt,
	}
	for _, msg := range s.Messages {
		out.Messages = append(out.Messages, *m.MessageToModel(&msg))
	}
	return out
}

func (m *SessionMapper) MessageToEntity(msg *model.SessionMessage) *entity.SessionMessage {
	if msg == nil {
		return nil
	}
	return &entity.SessionMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *SessionMapper) MessageToModel(msg *entity.SessionMessage) *model.SessionMessage {
	if msg == nil {
		return nil
	}
	return &model.SessionMessage{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      msg.Role,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *SessionMapper) ScoreToEntity(s *model.SessionScore) *entity.SessionScore {
	if s == nil {
		return nil
	}
	return &entity.SessionScore{
		Id:                s.Id,
		SessionId:         s.SessionId,
		CrisisRecognition: s.CrisisRecognition,
		Empathy:           s.Empathy,
		Appropriateness:   s.Appropriateness,
		Deescalation:      s.Deescalation,
		Overall:           s.Overall,
		SkillLevel:        s.SkillLevel,
		CreatedAt:         s.CreatedAt,
	}
}

func (m *SessionMapper) ScoreToModel(s *entity.SessionScore) *model.SessionScore {
	if s == nil {
		return nil
	}
	return &model.SessionScore{
		Id:                s.Id,
		SessionId:         s.SessionId,
		CrisisRecognition: s.CrisisRecognition,
		Empathy:           s.Empathy,
		Appropriateness:   s.Appropriateness,
		Deescalation:      s.Deescalation,
		Overall:           s.Overall,
		SkillLevel:        s.SkillLevel,
		CreatedAt:         s.CreatedAt,
	}
}
