package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

const accountsCollection = "accounts"

// Index names double as the discriminator when the server rejects a
// duplicate: the driver reports which unique index fired only through the
// write error message, so the names are matched at this adapter boundary and
// translated into typed domain conflicts.
const (
	idxUniqueUsername = "uniq_username"
	idxUniqueWallet   = "uniq_wallet_address"
)

// AccountRepository implements ports.AccountRepository on MongoDB. The
// unique partial indexes on username and wallet_address are the store-level
// guarantee that closes the check-then-insert race window.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type accountDoc struct {
	ID             string     `bson:"_id"`
	Username       string     `bson:"username,omitempty"`
	WalletAddress  string     `bson:"wallet_address,omitempty"`
	IsAnonymous    bool       `bson:"is_anonymous"`
	CreatedAt      time.Time  `bson:"created_at"`
	LastActiveAt   time.Time  `bson:"last_active_at"`
	WalletLinkedAt *time.Time `bson:"wallet_linked_at,omitempty"`
}

func (d *accountDoc) toDomain() *domain.Account {
	return &domain.Account{
		ID:             d.ID,
		Username:       d.Username,
		WalletAddress:  d.WalletAddress,
		IsAnonymous:    d.IsAnonymous,
		CreatedAt:      d.CreatedAt.UTC(),
		LastActiveAt:   d.LastActiveAt.UTC(),
		WalletLinkedAt: d.WalletLinkedAt,
	}
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, domain.ErrInvalidIdentifier
	}
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) FindByWallet(ctx context.Context, walletAddress string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"wallet_address": walletAddress})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, storeError("find account", err)
	}
	return doc.toDomain(), nil
}

// Insert persists a new account under its pre-assigned id.
func (r *AccountRepository) Insert(ctx context.Context, acc *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := accountDoc{
		ID:             acc.ID,
		Username:       acc.Username,
		WalletAddress:  acc.WalletAddress,
		IsAnonymous:    acc.IsAnonymous,
		CreatedAt:      acc.CreatedAt.UTC(),
		LastActiveAt:   acc.LastActiveAt.UTC(),
		WalletLinkedAt: acc.WalletLinkedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateToConflict(err)
		}
		return storeError("insert account", err)
	}
	return nil
}

// Update applies a partial update; nil fields are untouched.
func (r *AccountRepository) Update(ctx context.Context, id string, u ports.AccountUpdate) error {
	if id == "" {
		return domain.ErrInvalidIdentifier
	}

	set := bson.M{}
	if u.Username != nil {
		set["username"] = *u.Username
	}
	if u.WalletAddress != nil {
		set["wallet_address"] = *u.WalletAddress
	}
	if u.IsAnonymous != nil {
		set["is_anonymous"] = *u.IsAnonymous
	}
	if u.LastActiveAt != nil {
		set["last_active_at"] = u.LastActiveAt.UTC()
	}
	if u.WalletLinkedAt != nil {
		set["wallet_linked_at"] = u.WalletLinkedAt.UTC()
	}
	if len(set) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateToConflict(err)
		}
		return storeError("update account", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique partial indexes on username and
// wallet_address. Partial filters keep documents without the attribute out
// of the index, so optional fields stay optional while present values stay
// unique.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "username", Value: 1}},
			Options: options.Index().
				SetName(idxUniqueUsername).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"username": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "wallet_address", Value: 1}},
			Options: options.Index().
				SetName(idxUniqueWallet).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"wallet_address": bson.M{"$exists": true}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// duplicateToConflict translates a duplicate-key write error into the domain
// conflict for whichever unique index fired.
func duplicateToConflict(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, idxUniqueUsername) {
				return domain.ErrUsernameExists
			}
			if strings.Contains(e.Message, idxUniqueWallet) {
				return domain.ErrWalletLinkedToOtherAccount
			}
		}
	}
	// Duplicate _id: ids are assigned once at creation, so this is a caller bug.
	return domain.ErrInvalidIdentifier
}

// storeError tags timeouts and network failures as transient so callers can
// distinguish retryable failures from conflicts.
func storeError(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
