package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/saferide/kids-api/internal/core/domain"
	"github.com/saferide/kids-api/internal/core/ports"
)

const childrenCollection = "children"

type ChildRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewChildRepository(db *mongo.Database) *ChildRepository {
	return &ChildRepository{coll: db.Collection(childrenCollection), now: time.Now}
}

type childDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	GuardianID    interface{}        `bson:"guardian_id"`
	Name          string             `bson:"name"`
	DateOfBirth   time.Time          `bson:"date_of_birth"`
	HomeAddress   string             `bson:"home_address"`
	HomeCoords    domain.GeoPoint    `bson:"home_coordinates"`
	SchoolName    string             `bson:"school_name"`
	SchoolAddress string             `bson:"school_address"`
	SchoolCoords  domain.GeoPoint    `bson:"school_coordinates"`
	PhotoURL      string             `bson:"photo_url,omitempty"`
	Allergies     string             `bson:"allergies,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	// Pointer so records written before the flag existed decode as nil
	// and read as active.
	IsActive  *bool     `bson:"is_active,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *childDoc) toDomain() *domain.Child {
	return &domain.Child{
		ID:                d.ID.Hex(),
		GuardianID:        ownerRefString(d.GuardianID),
		Name:              d.Name,
		DateOfBirth:       d.DateOfBirth.UTC(),
		HomeAddress:       d.HomeAddress,
		HomeCoordinates:   d.HomeCoords,
		SchoolName:        d.SchoolName,
		SchoolAddress:     d.SchoolAddress,
		SchoolCoordinates: d.SchoolCoords,
		PhotoURL:          d.PhotoURL,
		Allergies:         d.Allergies,
		Notes:             d.Notes,
		IsActive:          d.IsActive == nil || *d.IsActive,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

// ownerRefString collapses the two historical guardian_id encodings to the
// canonical hex form. This is the only place that knows about the drift.
func ownerRefString(v interface{}) string {
	switch ref := v.(type) {
	case primitive.ObjectID:
		return ref.Hex()
	case string:
		return ref
	default:
		return ""
	}
}

// ownerRefFilter matches the owner reference in both of its stored
// encodings: canonical ObjectID and legacy plain string. All query sites go
// through this single adapter.
func ownerRefFilter(guardianID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(guardianID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "guardian_id", Reason: "malformed identifier"}
	}
	return bson.M{"$or": bson.A{
		bson.M{"guardian_id": oid},
		bson.M{"guardian_id": guardianID},
	}}, nil
}

// activeFilter matches records whose soft-delete flag is true or absent;
// records written before the flag existed count as active.
func activeFilter() bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"is_active": true},
		bson.M{"is_active": bson.M{"$exists": false}},
	}}
}

// ownerScopedFilter is the conjunction of the two OR-groups. They must be
// combined under an explicit $and: assigning both to the same "$or" key in
// one document would silently drop the first group.
func ownerScopedFilter(guardianID string, extra ...bson.M) (bson.M, error) {
	owner, err := ownerRefFilter(guardianID)
	if err != nil {
		return nil, err
	}
	clauses := bson.A{owner, activeFilter()}
	for _, m := range extra {
		clauses = append(clauses, m)
	}
	return bson.M{"$and": clauses}, nil
}

func childIDClause(id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &domain.ValidationError{Field: "child_id", Reason: "malformed identifier"}
	}
	return bson.M{"_id": oid}, nil
}

// Insert stores a new child. The owner reference is always written in the
// canonical ObjectID encoding; the string form is read-side tolerance only.
func (r *ChildRepository) Insert(ctx context.Context, child *domain.Child) (*domain.Child, error) {
	if r.coll == nil {
		return nil, ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	guardianOID, err := primitive.ObjectIDFromHex(child.GuardianID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "guardian_id", Reason: "malformed identifier"}
	}

	active := child.IsActive
	doc := childDoc{
		GuardianID:    guardianOID,
		Name:          child.Name,
		DateOfBirth:   child.DateOfBirth,
		HomeAddress:   child.HomeAddress,
		HomeCoords:    child.HomeCoordinates,
		SchoolName:    child.SchoolName,
		SchoolAddress: child.SchoolAddress,
		SchoolCoords:  child.SchoolCoordinates,
		PhotoURL:      child.PhotoURL,
		Allergies:     child.Allergies,
		Notes:         child.Notes,
		IsActive:      &active,
		CreatedAt:     child.CreatedAt,
		UpdatedAt:     child.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert child: %w", err)
	}

	created := *child
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ChildRepository) FindByGuardian(ctx context.Context, guardianID string) ([]*domain.Child, error) {
	if r.coll == nil {
		return nil, ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownerScopedFilter(guardianID)
	if err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer cur.Close(ctx)

	children := []*domain.Child{}
	for cur.Next(ctx) {
		var doc childDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode child: %w", err)
		}
		children = append(children, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

func (r *ChildRepository) FindOne(ctx context.Context, id, guardianID string) (*domain.Child, error) {
	if r.coll == nil {
		return nil, ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := r.oneFilter(id, guardianID)
	if err != nil {
		return nil, err
	}

	var doc childDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChildNotFound
		}
		return nil, fmt.Errorf("find child: %w", err)
	}
	return doc.toDomain(), nil
}

// Update applies the non-nil fields of changes to an owned, active record.
// The updated_at bump happens in a second write so a no-op change set is
// still observable through ModifiedCount.
func (r *ChildRepository) Update(ctx context.Context, id, guardianID string, changes ports.ChildUpdate) (*domain.Child, error) {
	if r.coll == nil {
		return nil, ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := r.oneFilter(id, guardianID)
	if err != nil {
		return nil, err
	}

	set := updateSet(changes)
	if len(set) == 0 {
		return nil, domain.ErrNoChanges
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update child: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrChildNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, domain.ErrNoChanges
	}

	if _, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"updated_at": r.now().UTC()}}); err != nil {
		return nil, fmt.Errorf("update child timestamp: %w", err)
	}

	return r.FindOne(ctx, id, guardianID)
}

// SoftDelete flips is_active to false. The active clause in the match means
// concurrent deletes are safe: at most one call matches, the rest report
// not-found.
func (r *ChildRepository) SoftDelete(ctx context.Context, id, guardianID string) error {
	if r.coll == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := r.oneFilter(id, guardianID)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": r.now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("soft delete child: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrChildNotFound
	}
	return nil
}

func (r *ChildRepository) oneFilter(id, guardianID string) (bson.M, error) {
	idClause, err := childIDClause(id)
	if err != nil {
		return nil, err
	}
	return ownerScopedFilter(guardianID, idClause)
}

func updateSet(changes ports.ChildUpdate) bson.M {
	set := bson.M{}
	if changes.Name != nil {
		set["name"] = *changes.Name
	}
	if changes.DateOfBirth != nil {
		set["date_of_birth"] = *changes.DateOfBirth
	}
	if changes.HomeAddress != nil {
		set["home_address"] = *changes.HomeAddress
	}
	if changes.HomeCoordinates != nil {
		set["home_coordinates"] = *changes.HomeCoordinates
	}
	if changes.SchoolName != nil {
		set["school_name"] = *changes.SchoolName
	}
	if changes.SchoolAddress != nil {
		set["school_address"] = *changes.SchoolAddress
	}
	if changes.SchoolCoordinates != nil {
		set["school_coordinates"] = *changes.SchoolCoordinates
	}
	if changes.PhotoURL != nil {
		set["photo_url"] = *changes.PhotoURL
	}
	if changes.Allergies != nil {
		set["allergies"] = *changes.Allergies
	}
	if changes.Notes != nil {
		set["notes"] = *changes.Notes
	}
	return set
}

// EnsureIndexes creates the query indexes for owner-scoped listing.
func (r *ChildRepository) EnsureIndexes(ctx context.Context) error {
	if r.coll == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "guardian_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
