package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
	"muhasebe-api/pkg/apperror"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
)

const auditWriteTimeout = 3 * time.Second

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewAuditService creates a new audit service.
// If repo is nil, audit entries are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Record appends an audit entry. The write outlives request cancellation
// and its failure is logged and reported, never returned.
func (s *auditService) Record(ctx context.Context, entry ports.AuditEntry) {
	log := &domain.AuditLogEntry{
		ID:         domain.NewID(),
		UserID:     entry.ActorID,
		ActionType: entry.Action,
		Target:     entry.Target,
		ItemID:     entry.ItemID,
		OldValue:   s.snapshot(entry.Old),
		NewValue:   s.snapshot(entry.New),
		Date:       s.now(),
	}

	s.log.Info().
		Str("action", string(log.ActionType)).
		Str("target", log.Target).
		Str("item_id", log.ItemID).
		Str("actor", log.UserID).
		Msg("audit")

	if s.repo == nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	if err := s.repo.Create(writeCtx, log); err != nil {
		s.log.Warn().Err(err).
			Str("action", string(log.ActionType)).
			Str("target", log.Target).
			Str("item_id", log.ItemID).
			Msg("failed to persist audit log")
		reportError(ctx, fmt.Errorf("persist audit log %s/%s: %w", log.Target, log.ItemID, err))
	}
}

// List returns audit entries newest first. Admin only.
func (s *auditService) List(ctx context.Context, q ports.AuditQuery) ([]domain.AuditLogEntry, int64, error) {
	p, ok := domain.PrincipalFrom(ctx)
	if !ok {
		return nil, 0, apperror.ErrUnauthenticated()
	}
	if !p.IsAdmin() || !p.IsActive() {
		return nil, 0, apperror.ErrForbidden("Only administrators can read the audit log")
	}
	if s.repo == nil {
		return []domain.AuditLogEntry{}, 0, nil
	}

	filter := ports.NewFilter()
	if q.Target != "" {
		filter = filter.With(ports.FieldTarget, q.Target)
	}
	if q.ItemID != "" {
		filter = filter.With(ports.FieldItemID, q.ItemID)
	}

	entries, total, err := s.repo.List(ctx, filter, q.Page)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list audit logs: %w", err))
	}
	return entries, total, nil
}

func (s *auditService) snapshot(v any) *string {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to serialize audit snapshot")
		return nil
	}
	out := string(b)
	return &out
}

// reportError sends err to Sentry using the request hub when there is one.
func reportError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}
