package ports

import (
	"context"

	"github.com/walletgate/identity-service/internal/core/domain"
)

// AuthenticateInput carries the caller's identifying attributes. Both fields
// are optional; an empty input creates a fresh anonymous account.
type AuthenticateInput struct {
	WalletAddress string
	Username      string
}

// AuthResult is returned on every successful authentication.
type AuthResult struct {
	UID         string
	Username    string
	IsNewUser   bool
	IsAnonymous bool
	AuthType    string // domain.AuthTypeWallet or domain.AuthTypeAnonymous
	Token       string
}

// IdentityService reconciles partial identifying attributes to exactly one
// account and manages the bindings on it.
type IdentityService interface {
	// Authenticate resolves (wallet?, username?) to exactly one account,
	// creating it when nothing matches, and mints a session credential.
	Authenticate(ctx context.Context, input AuthenticateInput) (*AuthResult, error)
	// LinkWallet attaches a wallet address to an existing account. Idempotent
	// when the wallet is already bound to that same account.
	LinkWallet(ctx context.Context, uid, walletAddress string) (*domain.Account, error)
	// Rename sets or changes the account's username.
	Rename(ctx context.Context, uid, newUsername string) (*domain.Account, error)
	// GetAccount returns the account for an id.
	GetAccount(ctx context.Context, uid string) (*domain.Account, error)
}
