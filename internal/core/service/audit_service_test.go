package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/walletgate/identity-service/internal/core/domain"
)

type stubAuditRepo struct {
	events    []*domain.AuditEvent
	insertErr error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, e *domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, e)
	return nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, nopLogger)

	err := svc.Record(context.Background(), domain.AuditEvent{
		AccountID:  "a1",
		Kind:       domain.AuditWalletLinked,
		Wallet:     "W1",
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Kind != domain.AuditWalletLinked {
		t.Fatalf("event not persisted: %+v", repo.events)
	}
}

func TestAuditService_RecordStampsMissingTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, nopLogger)

	if err := svc.Record(context.Background(), domain.AuditEvent{AccountID: "a1", Kind: domain.AuditAccountCreated}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if repo.events[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be stamped")
	}
}

func TestAuditService_RecordRejectsIncompleteEvent(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, nopLogger)

	err := svc.Record(context.Background(), domain.AuditEvent{Kind: domain.AuditAccountCreated})
	if !errors.Is(err, domain.ErrInvalidIdentifier) {
		t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
	}
}

func TestAuditService_RecordPropagatesStoreError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: domain.ErrStoreUnavailable}
	svc := NewAuditService(repo, nopLogger)

	err := svc.Record(context.Background(), domain.AuditEvent{AccountID: "a1", Kind: domain.AuditAccountCreated})
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}
