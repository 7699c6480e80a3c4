package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// IssueInput carries the create/update payload. Identifier fields stay raw
// strings here: format validation is the core's job, not the transport's.
// A nil optional means the field was absent; a present-but-blank assignee is
// treated as absent after trimming.
type IssueInput struct {
	OrganizationID string
	Title          string
	Description    string
	Status         string
	AssigneeID     *string
	ParentIssueID  *string
}

// ListIssuesInput carries the list query. OrganizationID is required.
type ListIssuesInput struct {
	OrganizationID string
	ParentIssueID  *string
}

// SearchIssuesInput carries the search query.
type SearchIssuesInput struct {
	OrganizationID string
	Query          string
}

// IssueService defines issue use-cases. Every operation requires the actor to
// be a member of the issue's organization.
type IssueService interface {
	Create(ctx context.Context, actorID primitive.ObjectID, in IssueInput) (*domain.Issue, error)
	Get(ctx context.Context, actorID, issueID primitive.ObjectID) (*domain.Issue, error)
	List(ctx context.Context, actorID primitive.ObjectID, in ListIssuesInput) ([]*domain.Issue, error)
	Search(ctx context.Context, actorID primitive.ObjectID, in SearchIssuesInput) ([]*domain.Issue, error)
	Update(ctx context.Context, actorID, issueID primitive.ObjectID, in IssueInput) (*domain.Issue, error)
	Delete(ctx context.Context, actorID, issueID primitive.ObjectID) error
}
