package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/walletgate/identity-service/internal/core/domain"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *recordingAuditService) Record(_ context.Context, e domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingAuditService) snapshot() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := &recordingAuditService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(domain.AuditEvent{AccountID: "a1", Kind: domain.AuditAccountCreated})
	}

	deadline := time.After(2 * time.Second)
	for {
		if len(svc.snapshot()) == 10 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected 10 events, got %d", len(svc.snapshot()))
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestDispatcher_ShardIsStablePerAccount(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditService{}, zerolog.Nop())

	first := d.shardIndex("account-42")
	for i := 0; i < 100; i++ {
		if d.shardIndex("account-42") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingAuditService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
