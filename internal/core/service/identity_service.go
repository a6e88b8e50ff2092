package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

// ActivityThrottle coalesces last-active writes (Redis). Advisory: on error
// the service writes anyway.
type ActivityThrottle interface {
	// RecentlySeen reports whether the account's activity was already
	// recorded within the throttle window.
	RecentlySeen(ctx context.Context, accountID string) (bool, error)
	// MarkSeen records activity for the account (expires after the window).
	MarkSeen(ctx context.Context, accountID string) error
}

type identityService struct {
	repo     ports.AccountRepository
	guard    *UniquenessGuard
	issuer   ports.CredentialIssuer
	audit    ports.AuditSink
	activity ActivityThrottle
	log      zerolog.Logger
}

// NewIdentityService returns the reconciliation engine. The engine is
// stateless between calls; all durable state lives behind repo.
func NewIdentityService(
	repo ports.AccountRepository,
	issuer ports.CredentialIssuer,
	audit ports.AuditSink,
	activity ActivityThrottle,
	log zerolog.Logger,
) ports.IdentityService {
	return &identityService{
		repo:     repo,
		guard:    NewUniquenessGuard(repo),
		issuer:   issuer,
		audit:    audit,
		activity: activity,
		log:      log,
	}
}

// Authenticate resolves (wallet?, username?) to exactly one account. The
// precedence order is fixed: wallet-first lookup, then username fallback,
// then creation with a last-chance uniqueness re-check before insert.
func (s *identityService) Authenticate(ctx context.Context, in ports.AuthenticateInput) (*ports.AuthResult, error) {
	wallet := strings.TrimSpace(in.WalletAddress)
	username := strings.TrimSpace(in.Username)

	// 1. Wallet-first lookup: a wallet match is authoritative.
	if wallet != "" {
		acc, err := s.repo.FindByWallet(ctx, wallet)
		switch {
		case err == nil:
			if err := checkRecord(acc); err != nil {
				return nil, err
			}
			// A differing supplied username is informational only; the
			// stored username wins and is never renamed by authentication.
			if username != "" && username != acc.Username {
				s.log.Info().
					Str("account_id", acc.ID).
					Str("supplied_username", username).
					Str("stored_username", acc.Username).
					Msg("supplied username differs from stored username; keeping stored")
				s.audit.Enqueue(domain.AuditEvent{
					AccountID:  acc.ID,
					Kind:       domain.AuditUsernameDiscrepancy,
					Username:   acc.Username,
					Detail:     username,
					OccurredAt: time.Now().UTC(),
				})
			}
			return s.login(ctx, acc, false, domain.AuthTypeWallet)
		case !errors.Is(err, domain.ErrAccountNotFound):
			return nil, err
		}
	}

	// 2. Username fallback lookup.
	if username != "" {
		acc, err := s.repo.FindByUsername(ctx, username)
		switch {
		case err == nil:
			if err := checkRecord(acc); err != nil {
				return nil, err
			}
			if wallet == "" {
				return s.login(ctx, acc, false, domain.AuthTypeAnonymous)
			}
			if acc.HasWallet() {
				// acc.WalletAddress != wallet, or step 1 would have matched.
				return nil, domain.ErrUsernameLinkedToDifferentWallet
			}
			if err := s.attachWallet(ctx, acc, wallet); err != nil {
				return nil, err
			}
			return s.login(ctx, acc, false, domain.AuthTypeWallet)
		case !errors.Is(err, domain.ErrAccountNotFound):
			return nil, err
		}
	}

	// 3. Creation: nothing matched. Re-validate unbound attributes right
	// before the insert; this narrows (but cannot close) the race window
	// between the lookups above and the write. The unique indexes close it.
	if username != "" {
		taken, err := s.guard.IsUsernameTaken(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrUsernameExists
		}
	}
	if wallet != "" {
		taken, err := s.guard.IsWalletTaken(ctx, wallet)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrWalletLinkedToOtherAccount
		}
	}

	now := time.Now().UTC()
	acc := &domain.Account{
		ID:            uuid.NewString(),
		Username:      username,
		WalletAddress: wallet,
		IsAnonymous:   wallet == "",
		CreatedAt:     now,
		LastActiveAt:  now,
	}
	if wallet != "" {
		acc.WalletLinkedAt = &now
	}
	if err := s.repo.Insert(ctx, acc); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", acc.ID).
		Str("state", string(acc.State())).
		Msg("account created")
	s.audit.Enqueue(domain.AuditEvent{
		AccountID:  acc.ID,
		Kind:       domain.AuditAccountCreated,
		Username:   acc.Username,
		Wallet:     acc.WalletAddress,
		OccurredAt: now,
	})

	return s.login(ctx, acc, true, authType(wallet))
}

// LinkWallet attaches a wallet address to an existing account. Re-linking the
// same wallet to the same account is an idempotent success; a bound wallet is
// never overwritten.
func (s *identityService) LinkWallet(ctx context.Context, uid, walletAddress string) (*domain.Account, error) {
	uid = strings.TrimSpace(uid)
	wallet := strings.TrimSpace(walletAddress)
	if uid == "" || wallet == "" {
		return nil, domain.ErrInvalidIdentifier
	}

	existing, err := s.repo.FindByWallet(ctx, wallet)
	switch {
	case err == nil:
		if err := checkRecord(existing); err != nil {
			return nil, err
		}
		if existing.ID != uid {
			return nil, domain.ErrWalletLinkedToOtherAccount
		}
		return existing, nil
	case !errors.Is(err, domain.ErrAccountNotFound):
		return nil, err
	}

	acc, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := checkRecord(acc); err != nil {
		return nil, err
	}
	if acc.HasWallet() {
		// The stored wallet differs from the requested one; rejected rather
		// than silently kept.
		return nil, domain.ErrWalletAlreadyBound
	}
	if err := s.attachWallet(ctx, acc, wallet); err != nil {
		return nil, err
	}
	return acc, nil
}

// Rename sets or changes the account's username.
func (s *identityService) Rename(ctx context.Context, uid, newUsername string) (*domain.Account, error) {
	uid = strings.TrimSpace(uid)
	username := strings.TrimSpace(newUsername)
	if uid == "" || username == "" {
		return nil, domain.ErrInvalidIdentifier
	}

	taken, err := s.guard.IsUsernameTakenByOther(ctx, username, uid)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameExists
	}

	acc, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := checkRecord(acc); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := ports.AccountUpdate{Username: &username, LastActiveAt: &now}
	if err := s.repo.Update(ctx, uid, update); err != nil {
		return nil, err
	}
	previous := acc.Username
	acc.Username = username
	acc.LastActiveAt = now

	s.log.Info().Str("account_id", uid).Msg("username updated")
	s.audit.Enqueue(domain.AuditEvent{
		AccountID:  uid,
		Kind:       domain.AuditUsernameRenamed,
		Username:   username,
		Detail:     previous,
		OccurredAt: now,
	})
	return acc, nil
}

// GetAccount returns the account for an id.
func (s *identityService) GetAccount(ctx context.Context, uid string) (*domain.Account, error) {
	if strings.TrimSpace(uid) == "" {
		return nil, domain.ErrInvalidIdentifier
	}
	acc, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := checkRecord(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

// attachWallet binds a wallet to an account that has none. Mutates acc to
// reflect the persisted state.
func (s *identityService) attachWallet(ctx context.Context, acc *domain.Account, wallet string) error {
	now := time.Now().UTC()
	anon := false
	update := ports.AccountUpdate{
		WalletAddress:  &wallet,
		IsAnonymous:    &anon,
		WalletLinkedAt: &now,
	}
	if err := s.repo.Update(ctx, acc.ID, update); err != nil {
		return err
	}
	acc.WalletAddress = wallet
	acc.IsAnonymous = false
	acc.WalletLinkedAt = &now

	s.log.Info().Str("account_id", acc.ID).Msg("wallet linked")
	s.audit.Enqueue(domain.AuditEvent{
		AccountID:  acc.ID,
		Kind:       domain.AuditWalletLinked,
		Wallet:     wallet,
		OccurredAt: now,
	})
	return nil
}

// login stamps activity, mints a credential, and assembles the result.
func (s *identityService) login(ctx context.Context, acc *domain.Account, isNew bool, authType string) (*ports.AuthResult, error) {
	if !isNew {
		s.touchLastActive(ctx, acc)
	}

	token, err := s.issuer.Issue(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{
		UID:         acc.ID,
		Username:    acc.Username,
		IsNewUser:   isNew,
		IsAnonymous: acc.IsAnonymous,
		AuthType:    authType,
		Token:       token,
	}, nil
}

// touchLastActive updates last_active_at, coalesced through the activity
// throttle. Failures are logged and never fail the authentication.
func (s *identityService) touchLastActive(ctx context.Context, acc *domain.Account) {
	seen, err := s.activity.RecentlySeen(ctx, acc.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", acc.ID).Msg("activity throttle check failed, writing anyway")
	} else if seen {
		return
	}

	now := time.Now().UTC()
	if err := s.repo.Update(ctx, acc.ID, ports.AccountUpdate{LastActiveAt: &now}); err != nil {
		s.log.Warn().Err(err).Str("account_id", acc.ID).Msg("failed to update last_active_at")
		return
	}
	acc.LastActiveAt = now

	if err := s.activity.MarkSeen(ctx, acc.ID); err != nil {
		s.log.Warn().Err(err).Str("account_id", acc.ID).Msg("failed to mark account activity")
	}
}

// checkRecord rejects records the store should never produce.
func checkRecord(acc *domain.Account) error {
	if acc == nil || acc.ID == "" {
		return domain.ErrCorruptAccount
	}
	return nil
}

func authType(wallet string) string {
	if wallet != "" {
		return domain.AuthTypeWallet
	}
	return domain.AuthTypeAnonymous
}
