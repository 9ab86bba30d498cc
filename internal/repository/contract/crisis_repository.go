package contract

import (
	"context"

	"peer-support-be/internal/entity"
	"peer-support-be/internal/repository/specification"

	"github.com/google/uuid"
)

type CrisisAlertRepository interface {
	Create(ctx context.Context, alert *entity.CrisisAlert) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CrisisAlert, error)
	Acknowledge(ctx context.Context, id uuid.UUID, by uuid.UUID) error
}
