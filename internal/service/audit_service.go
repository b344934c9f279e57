package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kirinho/cloud-file/internal/events"
	"github.com/kirinho/cloud-file/internal/observability"
)

// AuditService writes a structured audit trail for auth-relevant events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to the audit events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleRegistered)
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handleLoginSucceeded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventUserDisabled, a.handleUserDisabled)
}

func (a *AuditService) handleRegistered(ctx context.Context, event events.Event) error {
	a.logger.Info("audit: user registered",
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleLoginSucceeded(ctx context.Context, event events.Event) error {
	a.logger.Info("audit: login succeeded",
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID))
	return nil
}

func (a *AuditService) handleLoginFailed(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.LoginFailedPayload); ok {
		a.metrics.RecordAuthFailure(payload.Kind)
	}
	a.logger.Warn("audit: login failed",
		zap.String("event_id", event.ID),
		zap.Any("payload", event.Payload))
	return nil
}

func (a *AuditService) handleUserDisabled(ctx context.Context, event events.Event) error {
	a.logger.Info("audit: user disabled",
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID))
	return nil
}
