package service

import (
	"context"
	"errors"
	"testing"

	"github.com/walletgate/identity-service/internal/core/domain"
)

func TestUniquenessGuard_EmptyInputsNeverTaken(t *testing.T) {
	g := NewUniquenessGuard(newStubAccountRepo())
	ctx := context.Background()

	if taken, err := g.IsUsernameTaken(ctx, ""); err != nil || taken {
		t.Fatalf("empty username: taken=%v err=%v", taken, err)
	}
	if taken, err := g.IsWalletTaken(ctx, ""); err != nil || taken {
		t.Fatalf("empty wallet: taken=%v err=%v", taken, err)
	}
	if taken, err := g.IsUsernameTakenByOther(ctx, "", "any"); err != nil || taken {
		t.Fatalf("empty username by-other: taken=%v err=%v", taken, err)
	}
}

func TestUniquenessGuard_ExactMatchOnly(t *testing.T) {
	repo := newStubAccountRepo()
	repo.byID["a1"] = &domain.Account{ID: "a1", Username: "Alice", WalletAddress: "W1"}
	g := NewUniquenessGuard(repo)
	ctx := context.Background()

	if taken, _ := g.IsUsernameTaken(ctx, "Alice"); !taken {
		t.Fatalf("expected Alice to be taken")
	}
	// Case-sensitive exact match.
	if taken, _ := g.IsUsernameTaken(ctx, "alice"); taken {
		t.Fatalf("lookup must be case-sensitive")
	}
	if taken, _ := g.IsWalletTaken(ctx, "W1"); !taken {
		t.Fatalf("expected W1 to be taken")
	}
	if taken, _ := g.IsWalletTaken(ctx, "W2"); taken {
		t.Fatalf("W2 must be free")
	}
}

func TestUniquenessGuard_ExcludesOwnAccount(t *testing.T) {
	repo := newStubAccountRepo()
	repo.byID["a1"] = &domain.Account{ID: "a1", Username: "alice"}
	g := NewUniquenessGuard(repo)
	ctx := context.Background()

	if taken, _ := g.IsUsernameTakenByOther(ctx, "alice", "a1"); taken {
		t.Fatalf("own username must not count as taken")
	}
	if taken, _ := g.IsUsernameTakenByOther(ctx, "alice", "a2"); !taken {
		t.Fatalf("username held by another account must be taken")
	}
}

type failingRepo struct {
	*stubAccountRepo
	err error
}

func (r *failingRepo) FindByUsername(context.Context, string) (*domain.Account, error) {
	return nil, r.err
}

func TestUniquenessGuard_StoreErrorPropagates(t *testing.T) {
	repo := &failingRepo{stubAccountRepo: newStubAccountRepo(), err: domain.ErrStoreUnavailable}
	g := NewUniquenessGuard(repo)

	_, err := g.IsUsernameTaken(context.Background(), "alice")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}
