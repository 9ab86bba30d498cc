package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CrisisAlert struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	SessionId      string         `gorm:"type:varchar(100);not null;index"`
	Severity       string         `gorm:"type:varchar(20);not null;index"`
	Message        string         `gorm:"type:text;not null"`
	Metadata       datatypes.JSON `gorm:"type:jsonb"`
	DetectedAt     time.Time      `gorm:"not null;index"`
	Acknowledged   bool           `gorm:"default:false;index"`
	AcknowledgedBy *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (CrisisAlert) TableName() string {
	return "crisis_alerts"
}
