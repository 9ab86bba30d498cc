package implementation

import (
	"context"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/mapper"
	"peer-support-be/internal/model"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CrisisAlertRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CrisisMapper
}

func NewCrisisAlertRepository(db *gorm.DB) contract.CrisisAlertRepository {
	return &CrisisAlertRepositoryImpl{
		db:     db,
		mapper: mapper.NewCrisisMapper(),
	}
}

func (r *CrisisAlertRepositoryImpl) Create(ctx context.Context, alert *entity.CrisisAlert) error {
	modelAlert := r.mapper.ToModel(alert)
	if err := r.db.WithContext(ctx).Create(modelAlert).Error; err != nil {
		return err
	}
	*alert = *r.mapper.ToEntity(modelAlert)
	return nil
}

func (r *CrisisAlertRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CrisisAlert, error) {
	var modelAlerts []model.CrisisAlert
	query := applySpecifications(r.db.WithContext(ctx).Order("detected_at DESC"), specs...)

	if err := query.Find(&modelAlerts).Error; err != nil {
		return nil, err
	}

	alerts := make([]*entity.CrisisAlert, 0, len(modelAlerts))
	for i := range modelAlerts {
		alerts = append(alerts, r.mapper.ToEntity(&modelAlerts[i]))
	}
	return alerts, nil
}

func (r *CrisisAlertRepositoryImpl) Acknowledge(ctx context.Context, id uuid.UUID, by uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.CrisisAlert{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_by": by,
		}).Error
}
