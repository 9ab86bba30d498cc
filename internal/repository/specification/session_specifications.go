package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByUserId struct {
	UserId uuid.UUID
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type BySeverity struct {
	Severity string
}

func (s BySeverity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("severity = ?", s.Severity)
}

type Unacknowledged struct{}

func (s Unacknowledged) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("acknowledged = false")
}
