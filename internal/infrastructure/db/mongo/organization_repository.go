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

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

const collectionOrganizations = "organizations"

// OrganizationRepository implements ports.OrganizationRepository using MongoDB.
type OrganizationRepository struct {
	col *mongo.Collection
}

func NewOrganizationRepository(db *mongo.Database) *OrganizationRepository {
	return &OrganizationRepository{col: db.Collection(collectionOrganizations)}
}

func (r *OrganizationRepository) Insert(ctx context.Context, org *domain.Organization) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, org); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrOrganizationKeyTaken
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Organization, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIDForMember filters by membership inside the query itself, so a
// missing organization and a non-member caller are indistinguishable.
func (r *OrganizationRepository) FindByIDForMember(ctx context.Context, id, userID primitive.ObjectID) (*domain.Organization, error) {
	return r.findOne(ctx, bson.M{"_id": id, "memberIds": userID})
}

func (r *OrganizationRepository) FindByKey(ctx context.Context, key string) (*domain.Organization, error) {
	return r.findOne(ctx, bson.M{"key": key})
}

func (r *OrganizationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var org domain.Organization
	if err := r.col.FindOne(ctx, filter).Decode(&org); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("find organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) ListForMember(ctx context.Context, userID primitive.ObjectID) ([]*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"memberIds": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer cur.Close(ctx)

	orgs := []*domain.Organization{}
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, fmt.Errorf("decode organizations: %w", err)
	}
	return orgs, nil
}

// AddMember adds userID to the member set with $addToSet, so re-adding an
// existing member is a no-op, and returns the post-update document.
func (r *OrganizationRepository) AddMember(ctx context.Context, id, userID primitive.ObjectID) (*domain.Organization, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$addToSet": bson.M{"memberIds": userID}}

	var org domain.Organization
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&org)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("add member: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOrganizationNotFound
	}
	return nil
}

// EnsureIndexes creates the unique key index and the membership index used
// by every member-scoped query.
func (r *OrganizationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "memberIds", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
