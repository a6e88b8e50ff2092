package domain

import "time"

// AuthType identifies how a caller authenticated.
const (
	AuthTypeWallet    = "wallet"
	AuthTypeAnonymous = "anonymous"
)

// Account is the canonical persisted identity record. Username and
// WalletAddress are each optional but unique across accounts when present.
// A wallet address, once bound, is never changed or cleared.
type Account struct {
	ID             string     `json:"id"`
	Username       string     `json:"username,omitempty"`
	WalletAddress  string     `json:"wallet_address,omitempty"`
	IsAnonymous    bool       `json:"is_anonymous"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActiveAt   time.Time  `json:"last_active_at"`
	WalletLinkedAt *time.Time `json:"wallet_linked_at,omitempty"`
}

// HasWallet reports whether a wallet address is bound to the account.
func (a *Account) HasWallet() bool {
	return a.WalletAddress != ""
}

// HasUsername reports whether the account carries a username.
func (a *Account) HasUsername() bool {
	return a.Username != ""
}

// AccountState is the reachable lifecycle state of an account, derived from
// which identifying attributes are bound. Wallet states are terminal with
// respect to anonymity: there is no transition back.
type AccountState string

const (
	StateAnonymousNoUsername   AccountState = "anonymous"
	StateAnonymousWithUsername AccountState = "anonymous_named"
	StateWalletNoUsername      AccountState = "wallet"
	StateWalletWithUsername    AccountState = "wallet_named"
)

// State derives the account's lifecycle state.
func (a *Account) State() AccountState {
	switch {
	case a.HasWallet() && a.HasUsername():
		return StateWalletWithUsername
	case a.HasWallet():
		return StateWalletNoUsername
	case a.HasUsername():
		return StateAnonymousWithUsername
	default:
		return StateAnonymousNoUsername
	}
}
