package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// OrganizationRepository defines persistence operations for organizations.
//
// FindByIDForMember is the membership-filtered lookup: it returns
// domain.ErrOrganizationNotFound when the organization does not exist OR the
// user is not in its member set, so callers cannot distinguish the two. The
// unfiltered FindByID is used where existence must be disclosed before the
// ownership check (delete, add-member).
type OrganizationRepository interface {
	Insert(ctx context.Context, org *domain.Organization) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Organization, error)
	FindByIDForMember(ctx context.Context, id, userID primitive.ObjectID) (*domain.Organization, error)
	// FindByKey looks an organization up by its upper-cased key.
	FindByKey(ctx context.Context, key string) (*domain.Organization, error)
	// ListForMember returns every organization whose member set contains
	// userID, sorted by name.
	ListForMember(ctx context.Context, userID primitive.ObjectID) ([]*domain.Organization, error)
	// AddMember atomically adds userID to the member set ($addToSet) and
	// returns the post-update document. Idempotent for existing members.
	AddMember(ctx context.Context, id, userID primitive.ObjectID) (*domain.Organization, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
