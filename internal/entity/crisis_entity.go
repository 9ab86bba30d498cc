package entity

import (
	"time"

	"github.com/google/uuid"
)

type CrisisSeverity string

const (
	SeverityLow      CrisisSeverity = "low"
	SeverityMedium   CrisisSeverity = "medium"
	SeverityHigh     CrisisSeverity = "high"
	SeverityCritical CrisisSeverity = "critical"
)

// CrisisAlert is the persisted record of an escalation. The live broadcast to
// helpers is transient; this row is the durable audit trail.
type CrisisAlert struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	SessionId      string
	Severity       CrisisSeverity
	Message        string
	Metadata       map[string]interface{}
	DetectedAt     time.Time
	Acknowledged   bool
	AcknowledgedBy *uuid.UUID
	CreatedAt      time.Time
}
