package service

import (
	"context"
	"errors"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

// UniquenessGuard answers whether a candidate username or wallet address is
// already bound to an account. It is read-only and advisory: it reflects the
// store's state at lookup time and offers no isolation beyond that. The
// store's unique indexes remain the actual guarantee.
type UniquenessGuard struct {
	repo ports.AccountRepository
}

func NewUniquenessGuard(repo ports.AccountRepository) *UniquenessGuard {
	return &UniquenessGuard{repo: repo}
}

// IsUsernameTaken reports whether any account holds the username. An empty
// username is never taken.
func (g *UniquenessGuard) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	acc, err := g.repo.FindByUsername(ctx, username)
	return g.taken(acc, err)
}

// IsUsernameTakenByOther reports whether an account other than excludeID
// holds the username. Used by rename so an account keeping its own name is
// not a conflict.
func (g *UniquenessGuard) IsUsernameTakenByOther(ctx context.Context, username, excludeID string) (bool, error) {
	if username == "" {
		return false, nil
	}
	acc, err := g.repo.FindByUsername(ctx, username)
	ok, err := g.taken(acc, err)
	if err != nil || !ok {
		return false, err
	}
	return acc.ID != excludeID, nil
}

// IsWalletTaken reports whether any account holds the wallet address. An
// empty address is never taken.
func (g *UniquenessGuard) IsWalletTaken(ctx context.Context, walletAddress string) (bool, error) {
	if walletAddress == "" {
		return false, nil
	}
	acc, err := g.repo.FindByWallet(ctx, walletAddress)
	return g.taken(acc, err)
}

func (g *UniquenessGuard) taken(acc *domain.Account, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}
	if acc == nil || acc.ID == "" {
		return false, domain.ErrCorruptAccount
	}
	return true, nil
}
