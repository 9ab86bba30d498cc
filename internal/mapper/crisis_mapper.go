package mapper

import (
	"encoding/json"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/model"

	"gorm.io/datatypes"
)

type CrisisMapper struct{}

func NewCrisisMapper() *CrisisMapper {
	return &CrisisMapper{}
}

func (m *CrisisMapper) ToEntity(a *model.CrisisAlert) *entity.CrisisAlert {
	if a == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &metadata)
	}
	return &entity.CrisisAlert{
		Id:             a.Id,
		UserId:         a.UserId,
		SessionId:      a.SessionId,
		Severity:       entity.CrisisSeverity(a.Severity),
		Message:        a.Message,
		Metadata:       metadata,
		DetectedAt:     a.DetectedAt,
		Acknowledged:   a.Acknowledged,
		AcknowledgedBy: a.AcknowledgedBy,
		CreatedAt:      a.CreatedAt,
	}
}

func (m *CrisisMapper) ToModel(a *entity.CrisisAlert) *model.CrisisAlert {
	if a == nil {
		return nil
	}
	var metadata datatypes.JSON
	if a.Metadata != nil {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = raw
		}
	}
	return &model.CrisisAlert{
		Id:             a.Id,
		UserId:         a.UserId,
		SessionId:      a.SessionId,
		Severity:       string(a.Severity),
		Message:        a.Message,
		Metadata:       metadata,
		DetectedAt:     a.DetectedAt,
		Acknowledged:   a.Acknowledged,
		AcknowledgedBy: a.AcknowledgedBy,
		CreatedAt:      a.CreatedAt,
	}
}
