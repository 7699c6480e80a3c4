package ports

import (
	"context"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder is the write side handed to services. Record must not block
// the request path and must never fail it; implementations enqueue and drop
// on overflow.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService processes dequeued audit events.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}
