package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"peer-support-be/internal/dto"
	"peer-support-be/internal/entity"
	"peer-support-be/internal/pkg/logger"
	"peer-support-be/internal/pkg/mailer"
	"peer-support-be/internal/realtime"
	"peer-support-be/internal/repository/contract"
	"peer-support-be/internal/repository/specification"
	"peer-support-be/pkg/events"
	pktNats "peer-support-be/pkg/nats"

	"github.com/google/uuid"
)

type ICrisisService interface {
	realtime.AlertSink
	// Start attaches the escalation worker to the event bus.
	Start()
	ListAlerts(ctx context.Context, req *dto.ListAlertsRequest) ([]dto.CrisisAlertDTO, error)
	Acknowledge(ctx context.Context, alertID, by uuid.UUID) error
}

type crisisService struct {
	crisisRepo     contract.CrisisAlertRepository
	eventPublisher *pktNats.Publisher
	eventSub       *pktNats.Subscriber
	emailService   mailer.IEmailService
	onCallEmail    string
	logger         logger.ILogger
}

func NewCrisisService(
	crisisRepo contract.CrisisAlertRepository,
	eventPublisher *pktNats.Publisher,
	eventSub *pktNats.Subscriber,
	emailService mailer.IEmailService,
	onCallEmail string,
	log logger.ILogger,
) ICrisisService {
	return &crisisService{
		crisisRepo:     crisisRepo,
		eventPublisher: eventPublisher,
		eventSub:       eventSub,
		emailService:   emailService,
		onCallEmail:    onCallEmail,
		logger:         log,
	}
}

// HandleAlert persists the alert and puts it on the bus. It runs off the
// connection's read loop, so the work happens in a goroutine and failures are
// logged rather than surfaced; the in-room broadcast already happened.
func (s *crisisService) HandleAlert(alert realtime.CrisisAlert) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		record := &entity.CrisisAlert{
			Id:         uuid.New(),
			UserId:     alert.UserID,
			SessionId:  alert.SessionID,
			Severity:   alert.Severity,
			Message:    alert.Message,
			Metadata: map[string]interface{}{
				"source":    "realtime",
				"broadcast": realtime.RoomHelpers,
			},
			DetectedAt: alert.Timestamp,
			CreatedAt:  time.Now(),
		}
		if err := s.crisisRepo.Create(ctx, record); err != nil {
			s.logger.Error("CrisisService", "Failed to persist crisis alert", map[string]interface{}{
				"user_id": alert.UserID,
				"error":   err.Error(),
			})
		}

		if s.eventPublisher == nil {
			return
		}
		event := events.BaseEvent{
			Type: "CRISIS_DETECTED",
			Data: map[string]interface{}{
				"alert_id":   record.Id.String(),
				"user_id":    alert.UserID.String(),
				"session_id": alert.SessionID,
				"severity":   string(alert.Severity),
				"message":    alert.Message,
			},
			OccurredAt: alert.Timestamp,
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("CrisisService", "Failed to publish CRISIS_DETECTED event", map[string]interface{}{
				"alert_id": record.Id,
				"error":    err.Error(),
			})
		}
	}()
}

// Start wires the durable escalation consumer: critical alerts page the
// on-call responder by email. Durable, so alerts survive a restart.
func (s *crisisService) Start() {
	if s.eventSub == nil {
		return
	}
	err := s.eventSub.Subscribe("events.CRISIS_DETECTED", "crisis-mailer", func(ctx context.Context, event events.Event) error {
		data := event.Payload()
		severity, _ := data["severity"].(string)
		if severity != string(entity.SeverityCritical) {
			return nil
		}

		userID, _ := data["user_id"].(string)
		sessionID, _ := data["session_id"].(string)
		message, _ := data["message"].(string)

		if err := s.emailService.SendCrisisAlert(s.onCallEmail, userID, sessionID, severity, message); err != nil {
			return fmt.Errorf("failed to send crisis email: %w", err)
		}
		s.logger.Info("CrisisService", "Critical alert escalated by email", map[string]interface{}{
			"user_id":    userID,
			"session_id": sessionID,
		})
		return nil
	})
	if err != nil {
		log.Printf("[WARN] Failed to start crisis escalation consumer: %v", err)
	}
}

func (s *crisisService) ListAlerts(ctx context.Context, req *dto.ListAlertsRequest) ([]dto.CrisisAlertDTO, error) {
	specs := []specification.Specification{}
	if req.Severity != "" {
		specs = append(specs, specification.BySeverity{Severity: req.Severity})
	}
	if req.UnacknowledgedOnly {
		specs = append(specs, specification.Unacknowledged{})
	}

	alerts, err := s.crisisRepo.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CrisisAlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		out = append(out, dto.CrisisAlertDTO{
			Id:             alert.Id,
			UserId:         alert.UserId,
			SessionId:      alert.SessionId,
			Severity:       string(alert.Severity),
			Message:        alert.Message,
			DetectedAt:     alert.DetectedAt,
			Acknowledged:   alert.Acknowledged,
			AcknowledgedBy: alert.AcknowledgedBy,
		})
	}
	return out, nil
}

func (s *crisisService) Acknowledge(ctx context.Context, alertID, by uuid.UUID) error {
	return s.crisisRepo.Acknowledge(ctx, alertID, by)
}
