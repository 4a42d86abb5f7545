package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saferide/kids-api/internal/core/domain"
)

const auditCollection = "audit_events"

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	GuardianID interface{}        `bson:"guardian_id"`
	ChildID    string             `bson:"child_id"`
	Action     string             `bson:"action"`
	OccurredAt time.Time          `bson:"occurred_at"`
}

func (d *auditDoc) toDomain() *domain.AuditEvent {
	return &domain.AuditEvent{
		ID:         d.ID.Hex(),
		GuardianID: ownerRefString(d.GuardianID),
		ChildID:    d.ChildID,
		Action:     d.Action,
		OccurredAt: d.OccurredAt.UTC(),
	}
}

// Insert stores one audit event. The owner reference is written in the
// canonical ObjectID encoding, same as the children collection.
func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if r.coll == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	guardianOID, err := primitive.ObjectIDFromHex(event.GuardianID)
	if err != nil {
		return &domain.ValidationError{Field: "guardian_id", Reason: "malformed identifier"}
	}

	doc := auditDoc{
		GuardianID: guardianOID,
		ChildID:    event.ChildID,
		Action:     event.Action,
		OccurredAt: event.OccurredAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindByGuardian(ctx context.Context, guardianID string) ([]*domain.AuditEvent, error) {
	if r.coll == nil {
		return nil, ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerRefFilter(guardianID)
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "occurred_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer cur.Close(ctx)

	events := []*domain.AuditEvent{}
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the query index for per-guardian trails.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	if r.coll == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "guardian_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
