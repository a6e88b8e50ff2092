package domain

import "errors"

// Conflict errors: uniqueness or binding-permanence violations. Expected,
// user-correctable, never retried by the service.
var (
	ErrUsernameExists                  = errors.New("username already exists")
	ErrUsernameLinkedToDifferentWallet = errors.New("username is linked to a different wallet")
	ErrWalletLinkedToOtherAccount      = errors.New("wallet address is linked to another account")
	ErrWalletAlreadyBound              = errors.New("account already has a wallet address bound")
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrStoreUnavailable marks transient store or issuer failures. Callers may
	// retry; the service never does, to avoid duplicate inserts.
	ErrStoreUnavailable = errors.New("identity store unavailable")

	// ErrCorruptAccount means the store returned a record violating a basic
	// invariant (e.g. missing id). Programmer error, not a user conflict.
	ErrCorruptAccount = errors.New("corrupt account record")
)

// IsConflict reports whether err is one of the closed set of conflict kinds.
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameExists) ||
		errors.Is(err, ErrUsernameLinkedToDifferentWallet) ||
		errors.Is(err, ErrWalletLinkedToOtherAccount) ||
		errors.Is(err, ErrWalletAlreadyBound)
}

// ConflictKind returns the stable label for a conflict error, used for
// metrics and API payloads. Empty string for non-conflict errors.
func ConflictKind(err error) string {
	switch {
	case errors.Is(err, ErrUsernameExists):
		return "USERNAME_ALREADY_EXISTS"
	case errors.Is(err, ErrUsernameLinkedToDifferentWallet):
		return "USERNAME_LINKED_TO_DIFFERENT_WALLET"
	case errors.Is(err, ErrWalletLinkedToOtherAccount):
		return "WALLET_ALREADY_LINKED_TO_ANOTHER_ACCOUNT"
	case errors.Is(err, ErrWalletAlreadyBound):
		return "WALLET_ALREADY_BOUND"
	default:
		return ""
	}
}
