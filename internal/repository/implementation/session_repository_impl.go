package implementation

import (
	"context"
	"errors"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/mapper"
	"peer-support-be/internal/model"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionRepository(db *gorm.DB) contract.SessionRepository {
	return &SessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionRepositoryImpl) Create(ctx context.Context, session *entity.TrainingSession) error {
	modelSession := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(modelSession).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(modelSession)
	return nil
}

func (r *SessionRepositoryImpl) Update(ctx context.Context, session *entity.TrainingSession) error {
	modelSession := r.mapper.ToModel(session)
	// Omit associations so an update never rewrites transcript rows.
	if err := r.db.WithContext(ctx).Omit("Messages", "Scores").Save(modelSession).Error; err != nil {
		return err
	}
	return nil
}

func (r *SessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TrainingSession, error) {
	var modelSession model.TrainingSession
	query := applySpecifications(r.db.WithContext(ctx), specs...).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("session_messages.created_at ASC")
		}).
		Preload("Scores")

	if err := query.First(&modelSession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelSession), nil
}

func (r *SessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TrainingSession, error) {
	var modelSessions []model.TrainingSession
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelSessions).Error; err != nil {
		return nil, err
	}

	sessions := make([]*entity.TrainingSession, 0, len(modelSessions))
	for i := range modelSessions {
		sessions = append(sessions, r.mapper.ToEntity(&modelSessions[i]))
	}
	return sessions, nil
}

func (r *SessionRepositoryImpl) AppendMessage(ctx context.Context, message *entity.SessionMessage) error {
	modelMessage := r.mapper.MessageToModel(message)
	if err := r.db.WithContext(ctx).Create(modelMessage).Error; err != nil {
		return err
	}
	*message = *r.mapper.MessageToEntity(modelMessage)
	return nil
}

func (r *SessionRepositoryImpl) GetTranscript(ctx context.Context, sessionId uuid.UUID) ([]entity.SessionMessage, error) {
	var modelMessages []model.SessionMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("created_at ASC").
		Find(&modelMessages).Error
	if err != nil {
		return nil, err
	}

	messages := make([]entity.SessionMessage, 0, len(modelMessages))
	for i := range modelMessages {
		messages = append(messages, *r.mapper.MessageToEntity(&modelMessages[i]))
	}
	return messages, nil
}

func (r *SessionRepositoryImpl) SaveScores(ctx context.Context, scores *entity.SessionScore) error {
	modelScores := r.mapper.ScoreToModel(scores)
	if err := r.db.WithContext(ctx).Create(modelScores).Error; err != nil {
		return err
	}
	*scores = *r.mapper.ScoreToEntity(modelScores)
	return nil
}

func (r *SessionRepositoryImpl) GetScores(ctx context.Context, sessionId uuid.UUID) (*entity.SessionScore, error) {
	var modelScores model.SessionScore
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		First(&modelScores).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ScoreToEntity(&modelScores), nil
}

func (r *SessionRepositoryImpl) Leaderboard(ctx context.Context, limit int) ([]contract.LeaderboardRow, error) {
	var rows []contract.LeaderboardRow
	err := r.db.WithContext(ctx).
		Table("session_scores").
		Select(`users.id AS user_id,
			users.full_name,
			users.skill_level,
			COUNT(session_scores.id) AS session_count,
			AVG(session_scores.overall) AS average_score`).
		Joins("JOIN training_sessions ON training_sessions.id = session_scores.session_id").
		Joins("JOIN users ON users.id = training_sessions.user_id").
		Group("users.id, users.full_name, users.skill_level").
		Order("average_score DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
