package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// CreateOrganizationInput carries the create payload. Key is normalized
// (trimmed, upper-cased) by the service.
type CreateOrganizationInput struct {
	Name string
	Key  string
}

// OrganizationService defines organization use-cases and doubles as the
// membership oracle consulted by other services. IsMember and IsOwner are
// read-only and safe to call repeatedly within a request.
type OrganizationService interface {
	Create(ctx context.Context, actorID primitive.ObjectID, in CreateOrganizationInput) (*domain.Organization, error)
	List(ctx context.Context, actorID primitive.ObjectID) ([]*domain.Organization, error)
	// Get is membership-filtered: non-members receive
	// domain.ErrOrganizationNotFound rather than a forbidden error.
	Get(ctx context.Context, actorID, orgID primitive.ObjectID) (*domain.Organization, error)
	// AddMember resolves the target user by email; owner-only.
	AddMember(ctx context.Context, actorID, orgID primitive.ObjectID, email string) (*domain.Organization, error)
	// Members lists the users of an organization; member-only.
	Members(ctx context.Context, actorID, orgID primitive.ObjectID) ([]*domain.User, error)
	// Delete cascades over the organization's issues; owner-only.
	Delete(ctx context.Context, actorID, orgID primitive.ObjectID) error

	IsMember(ctx context.Context, orgID, userID primitive.ObjectID) (bool, error)
	IsOwner(ctx context.Context, orgID, userID primitive.ObjectID) (bool, error)
}
