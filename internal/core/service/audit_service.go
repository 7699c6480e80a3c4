package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the worker-side consumer that persists audit
// events dequeued by the dispatcher.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("action", event.Action).
		Str("org_id", event.OrganizationID.Hex()).
		Str("actor_id", event.ActorID.Hex()).
		Msg("audit event recorded")
	return nil
}
