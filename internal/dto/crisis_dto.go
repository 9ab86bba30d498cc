package dto

import (
	"time"

	"github.com/google/uuid"
)

type CrisisAlertDTO struct {
	Id             uuid.UUID  `json:"id"`
	UserId         uuid.UUID  `json:"user_id"`
	SessionId      string     `json:"session_id"`
	Severity       string     `json:"severity"`
	Message        string     `json:"message"`
	DetectedAt     time.Time  `json:"detected_at"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedBy *uuid.UUID `json:"acknowledged_by,omitempty"`
}

type ListAlertsRequest struct {
	Severity           string `query:"severity" validate:"omitempty,oneof=low medium high critical"`
	UnacknowledgedOnly bool   `query:"unacknowledged_only"`
}
