package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// ListIssuesFilter carries the query parameters for listing issues.
// OrganizationID is always set; membership is enforced by the service layer
// before the repository is consulted.
type ListIssuesFilter struct {
	OrganizationID primitive.ObjectID
	ParentIssueID  *primitive.ObjectID // optional: only direct children of this issue
}

// IssueRepository defines persistence operations for issues.
type IssueRepository interface {
	Insert(ctx context.Context, issue *domain.Issue) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Issue, error)
	// FindByIDInOrganization returns the issue only when it belongs to orgID.
	FindByIDInOrganization(ctx context.Context, id, orgID primitive.ObjectID) (*domain.Issue, error)
	// List returns issues matching filter, newest first.
	List(ctx context.Context, filter ListIssuesFilter) ([]*domain.Issue, error)
	// Search runs a text search over title and description within one
	// organization, sorted by text score, capped at 50 results.
	Search(ctx context.Context, orgID primitive.ObjectID, query string) ([]*domain.Issue, error)
	// Update atomically replaces the mutable fields of the issue and returns
	// the post-update document, or domain.ErrIssueNotFound.
	Update(ctx context.Context, id primitive.ObjectID, issue *domain.Issue) (*domain.Issue, error)
	// Delete removes the issue, returning domain.ErrIssueNotFound when absent.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// DeleteByOrganization removes every issue of an organization. Used by the
	// cascading organization delete.
	DeleteByOrganization(ctx context.Context, orgID primitive.ObjectID) error
}
