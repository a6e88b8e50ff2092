package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// repository. It runs off the request path, called by dispatcher workers.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit event.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if event.AccountID == "" || event.Kind == "" {
		return fmt.Errorf("record audit event: %w", domain.ErrInvalidIdentifier)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("account_id", event.AccountID).
		Str("kind", string(event.Kind)).
		Msg("audit event recorded")
	return nil
}
