package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/walletgate/identity-service/internal/core/domain"
	"github.com/walletgate/identity-service/internal/core/ports"
)

const auditCollection = "identity_events"

// AuditRepository persists identity audit events to MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// InsertEvent appends one event to the identity_events collection.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"account_id":  event.AccountID,
		"kind":        string(event.Kind),
		"occurred_at": event.OccurredAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Username != "" {
		doc["username"] = event.Username
	}
	if event.Wallet != "" {
		doc["wallet"] = event.Wallet
	}
	if event.Detail != "" {
		doc["detail"] = event.Detail
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert audit event", err)
	}
	return nil
}
