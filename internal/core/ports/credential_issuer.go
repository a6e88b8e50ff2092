package ports

import "context"

// CredentialIssuer mints an opaque bearer credential for an account id.
// Stateless from the engine's point of view.
type CredentialIssuer interface {
	Issue(ctx context.Context, accountID string) (string, error)
}
