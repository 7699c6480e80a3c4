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
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

const (
	collectionIssues = "issues"
	searchLimit      = 50
)

// IssueRepository implements ports.IssueRepository using MongoDB.
type IssueRepository struct {
	col *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{col: db.Collection(collectionIssues)}
}

func (r *IssueRepository) Insert(ctx context.Context, issue *domain.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, issue); err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Issue, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *IssueRepository) FindByIDInOrganization(ctx context.Context, id, orgID primitive.ObjectID) (*domain.Issue, error) {
	return r.findOne(ctx, bson.M{"_id": id, "organizationId": orgID})
}

func (r *IssueRepository) findOne(ctx context.Context, filter bson.M) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var issue domain.Issue
	if err := r.col.FindOne(ctx, filter).Decode(&issue); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return &issue, nil
}

// List returns the organization's issues newest first, optionally narrowed
// to the direct children of one parent.
func (r *IssueRepository) List(ctx context.Context, filter ports.ListIssuesFilter) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"organizationId": filter.OrganizationID}
	if filter.ParentIssueID != nil {
		query["parentIssueId"] = *filter.ParentIssueID
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer cur.Close(ctx)

	issues := []*domain.Issue{}
	if err := cur.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// Search runs a $text query against the title/description index, sorted by
// relevance score, capped at 50 documents.
func (r *IssueRepository) Search(ctx context.Context, orgID primitive.ObjectID, query string) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"organizationId": orgID,
		"$text":          bson.M{"$search": query},
	}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(searchLimit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}
	defer cur.Close(ctx)

	issues := []*domain.Issue{}
	if err := cur.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// Update replaces the mutable fields in one atomic FindOneAndUpdate and
// returns the post-update document. A nil assignee or parent pointer clears
// the stored field.
func (r *IssueRepository) Update(ctx context.Context, id primitive.ObjectID, issue *domain.Issue) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"organizationId": issue.OrganizationID,
		"title":          issue.Title,
		"description":    issue.Description,
		"status":         issue.Status,
		"assigneeId":     issue.AssigneeID,
		"parentIssueId":  issue.ParentIssueID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated domain.Issue
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("update issue: %w", err)
	}
	return &updated, nil
}

func (r *IssueRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepository) DeleteByOrganization(ctx context.Context, orgID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"organizationId": orgID}); err != nil {
		return fmt.Errorf("delete issues by organization: %w", err)
	}
	return nil
}

// EnsureIndexes creates the organization scoping indexes and the text index
// backing Search.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizationId", Value: 1}}},
		{Keys: bson.D{{Key: "parentIssueId", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "description", Value: "text"},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
