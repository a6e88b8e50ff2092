package ports

import (
	"context"
	"time"

	"github.com/walletgate/identity-service/internal/core/domain"
)

// AccountUpdate is a partial update applied to an existing account. Nil
// fields are left untouched. There is deliberately no way to clear a wallet
// address: a bound wallet is permanent.
type AccountUpdate struct {
	Username       *string
	WalletAddress  *string
	IsAnonymous    *bool
	LastActiveAt   *time.Time
	WalletLinkedAt *time.Time
}

// AccountRepository is the persistence port for the identity store. It offers
// point lookups by id and equality lookups by a single attribute; uniqueness
// of username and wallet_address is ultimately enforced by the store itself
// (unique indexes), so Insert and Update surface the domain conflict errors
// when the store rejects a duplicate.
type AccountRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByWallet(ctx context.Context, walletAddress string) (*domain.Account, error)
	// Insert persists a new account under its pre-assigned id. Fails if the
	// id already exists or a unique attribute is taken.
	Insert(ctx context.Context, account *domain.Account) error
	// Update applies a partial update. Fails with domain.ErrAccountNotFound
	// when no account has the given id.
	Update(ctx context.Context, id string, update AccountUpdate) error
}
