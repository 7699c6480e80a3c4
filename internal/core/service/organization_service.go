package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

// OrganizationService implements organization use-cases and the membership
// oracle. Authorization order per operation: authenticate (done upstream) →
// authorize (membership/ownership) → validate → cross-reference → mutate.
type OrganizationService struct {
	orgs   ports.OrganizationRepository
	issues ports.IssueRepository
	users  ports.UserRepository
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewOrganizationService(
	orgs ports.OrganizationRepository,
	issues ports.IssueRepository,
	users ports.UserRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *OrganizationService {
	return &OrganizationService{orgs: orgs, issues: issues, users: users, audit: audit, log: log}
}

func validateOrganization(in ports.CreateOrganizationInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Key) == "" {
		return domain.Invalid("name and key are required")
	}
	key := strings.TrimSpace(in.Key)
	if len(key) < 2 || len(key) > 8 {
		return domain.Invalid("key must be 2-8 characters")
	}
	return nil
}

// Create inserts a new organization with the actor as owner and sole initial
// member. Keys are upper-cased so uniqueness is case-insensitive.
func (s *OrganizationService) Create(ctx context.Context, actorID primitive.ObjectID, in ports.CreateOrganizationInput) (*domain.Organization, error) {
	if err := validateOrganization(in); err != nil {
		return nil, err
	}

	key := strings.ToUpper(strings.TrimSpace(in.Key))
	if _, err := s.orgs.FindByKey(ctx, key); err == nil {
		return nil, domain.ErrOrganizationKeyTaken
	} else if !errors.Is(err, domain.ErrOrganizationNotFound) {
		return nil, err
	}

	org := &domain.Organization{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(in.Name),
		Key:       key,
		OwnerID:   actorID,
		MemberIDs: []primitive.ObjectID{actorID},
	}
	if err := s.orgs.Insert(ctx, org); err != nil {
		return nil, err
	}

	s.record(domain.AuditOrganizationCreated, org.ID, actorID, org.ID)
	s.log.Info().Str("org_id", org.ID.Hex()).Str("key", org.Key).Msg("organization created")
	return org, nil
}

// List returns the organizations the actor belongs to. Non-member
// organizations are simply absent, never forbidden.
func (s *OrganizationService) List(ctx context.Context, actorID primitive.ObjectID) ([]*domain.Organization, error) {
	return s.orgs.ListForMember(ctx, actorID)
}

// Get is membership-filtered: the same not-found answer covers "does not
// exist" and "not yours".
func (s *OrganizationService) Get(ctx context.Context, actorID, orgID primitive.ObjectID) (*domain.Organization, error) {
	return s.orgs.FindByIDForMember(ctx, orgID, actorID)
}

// AddMember adds a user, resolved by email, to the member set. Owner-only;
// existence of the organization is disclosed before the ownership check.
func (s *OrganizationService) AddMember(ctx context.Context, actorID, orgID primitive.ObjectID, email string) (*domain.Organization, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("invalid email")
	}

	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.IsOwnedBy(actorID) {
		return nil, domain.ErrNotOwner
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Invalid("user not found")
		}
		return nil, err
	}

	updated, err := s.orgs.AddMember(ctx, orgID, user.ID)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditMemberAdded, orgID, actorID, user.ID)
	s.log.Info().Str("org_id", orgID.Hex()).Str("user_id", user.ID.Hex()).Msg("member added")
	return updated, nil
}

// Members lists the users of an organization. Requires membership; unlike
// Get, a failed membership filter here is reported as forbidden.
func (s *OrganizationService) Members(ctx context.Context, actorID, orgID primitive.ObjectID) ([]*domain.User, error) {
	org, err := s.orgs.FindByIDForMember(ctx, orgID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, domain.ErrNotMember
		}
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(org.MemberIDs)+1)
	seen := make(map[primitive.ObjectID]struct{}, len(org.MemberIDs)+1)
	for _, id := range append(org.MemberIDs, org.OwnerID) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return s.users.FindByIDs(ctx, ids)
}

// Delete removes the organization and all of its issues. The cascade is
// best-effort sequential: issues first, then the organization, no rollback.
func (s *OrganizationService) Delete(ctx context.Context, actorID, orgID primitive.ObjectID) error {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	if !org.IsOwnedBy(actorID) {
		return domain.ErrNotOwner
	}

	if err := s.issues.DeleteByOrganization(ctx, orgID); err != nil {
		return err
	}
	if err := s.orgs.Delete(ctx, orgID); err != nil {
		return err
	}

	s.record(domain.AuditOrganizationDeleted, orgID, actorID, orgID)
	s.log.Info().Str("org_id", orgID.Hex()).Msg("organization deleted")
	return nil
}

// IsMember reports whether userID is in the organization's member set. An
// absent organization answers false rather than erroring.
func (s *OrganizationService) IsMember(ctx context.Context, orgID, userID primitive.ObjectID) (bool, error) {
	_, err := s.orgs.FindByIDForMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsOwner reports whether userID owns the organization.
func (s *OrganizationService) IsOwner(ctx context.Context, orgID, userID primitive.ObjectID) (bool, error) {
	org, err := s.orgs.FindByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return false, nil
		}
		return false, err
	}
	return org.IsOwnedBy(userID), nil
}

func (s *OrganizationService) record(action string, orgID, actorID, subjectID primitive.ObjectID) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Action:         action,
		OrganizationID: orgID,
		ActorID:        actorID,
		SubjectID:      subjectID,
		At:             time.Now().UTC(),
	})
}
