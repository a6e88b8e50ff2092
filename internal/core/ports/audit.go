package ports

import (
	"context"

	"github.com/walletgate/identity-service/internal/core/domain"
)

// AuditRepository persists identity audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes a single audit event (called by the dispatcher
// workers, off the request path).
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts events for asynchronous recording. Implementations must
// not block the caller beyond bounded queueing.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
