package domain

import "time"

// AuditKind labels an identity change recorded to the audit trail.
type AuditKind string

const (
	AuditAccountCreated      AuditKind = "account_created"
	AuditWalletLinked        AuditKind = "wallet_linked"
	AuditUsernameRenamed     AuditKind = "username_renamed"
	AuditUsernameDiscrepancy AuditKind = "username_discrepancy"
)

// AuditEvent is an informational record of an identity change. Events are
// recorded best-effort; losing one never fails the operation that emitted it.
type AuditEvent struct {
	AccountID string    `json:"account_id"`
	Kind      AuditKind `json:"kind"`
	Username  string    `json:"username,omitempty"`
	Wallet    string    `json:"wallet,omitempty"`
	// Detail carries free-form context, e.g. the supplied username that a
	// wallet-first login discarded.
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
