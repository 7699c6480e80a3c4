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

// IssueService implements issue use-cases. Every operation checks tenant
// membership through the membership-filtered organization lookup before any
// cross-reference validation or mutation.
type IssueService struct {
	issues ports.IssueRepository
	orgs   ports.OrganizationRepository
	audit  ports.AuditRecorder
	log    zerolog.Logger
}

func NewIssueService(
	issues ports.IssueRepository,
	orgs ports.OrganizationRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *IssueService {
	return &IssueService{issues: issues, orgs: orgs, audit: audit, log: log}
}

func validateIssue(in ports.IssueInput) error {
	if strings.TrimSpace(in.OrganizationID) == "" ||
		strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Status) == "" {
		return domain.Invalid("organizationId, title, description, status are required")
	}
	if _, ok := domain.NormalizeStatus(strings.TrimSpace(in.Status)); !ok {
		return domain.Invalid("invalid status")
	}
	return nil
}

// buildIssue runs the shared create/update pipeline: structural validation,
// membership authorization, then cross-reference checks (assignee must be a
// member, parent must be an issue of the same organization).
func (s *IssueService) buildIssue(ctx context.Context, actorID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
	if err := validateIssue(in); err != nil {
		return nil, err
	}

	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.OrganizationID))
	if err != nil {
		return nil, domain.Invalid("invalid organizationId")
	}

	org, err := s.orgs.FindByIDForMember(ctx, orgID, actorID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, domain.ErrNotMember
		}
		return nil, err
	}

	var assigneeID *primitive.ObjectID
	if in.AssigneeID != nil {
		raw := strings.TrimSpace(*in.AssigneeID)
		if raw != "" {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				return nil, domain.Invalid("invalid assigneeId")
			}
			if !org.HasMember(id) {
				return nil, domain.Invalid("assigneeId must be a member of the organization")
			}
			assigneeID = &id
		}
	}

	var parentID *primitive.ObjectID
	if in.ParentIssueID != nil {
		id, err := primitive.ObjectIDFromHex(*in.ParentIssueID)
		if err != nil {
			return nil, domain.Invalid("invalid parentIssueId")
		}
		if _, err := s.issues.FindByIDInOrganization(ctx, id, orgID); err != nil {
			if errors.Is(err, domain.ErrIssueNotFound) {
				return nil, domain.Invalid("parentIssueId not found in organization")
			}
			return nil, err
		}
		parentID = &id
	}

	status, _ := domain.NormalizeStatus(strings.TrimSpace(in.Status))
	return &domain.Issue{
		OrganizationID: orgID,
		Title:          in.Title,
		Description:    in.Description,
		Status:         status,
		AssigneeID:     assigneeID,
		ParentIssueID:  parentID,
	}, nil
}

func (s *IssueService) Create(ctx context.Context, actorID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
	issue, err := s.buildIssue(ctx, actorID, in)
	if err != nil {
		return nil, err
	}

	issue.ID = primitive.NewObjectID()
	if err := s.issues.Insert(ctx, issue); err != nil {
		return nil, err
	}

	s.record(domain.AuditIssueCreated, issue.OrganizationID, actorID, issue.ID)
	s.log.Info().Str("issue_id", issue.ID.Hex()).Str("org_id", issue.OrganizationID.Hex()).Msg("issue created")
	return issue, nil
}

func (s *IssueService) Update(ctx context.Context, actorID, issueID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
	issue, err := s.buildIssue(ctx, actorID, in)
	if err != nil {
		return nil, err
	}

	updated, err := s.issues.Update(ctx, issueID, issue)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditIssueUpdated, updated.OrganizationID, actorID, updated.ID)
	return updated, nil
}

// Get discloses existence before the membership check: an absent issue is
// not-found, a foreign one forbidden.
func (s *IssueService) Get(ctx context.Context, actorID, issueID primitive.ObjectID) (*domain.Issue, error) {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMembership(ctx, issue.OrganizationID, actorID); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *IssueService) List(ctx context.Context, actorID primitive.ObjectID, in ports.ListIssuesInput) ([]*domain.Issue, error) {
	if strings.TrimSpace(in.OrganizationID) == "" {
		return nil, domain.Invalid("organizationId is required")
	}
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.OrganizationID))
	if err != nil {
		return nil, domain.Invalid("invalid organizationId")
	}
	if err := s.requireMembership(ctx, orgID, actorID); err != nil {
		return nil, err
	}

	filter := ports.ListIssuesFilter{OrganizationID: orgID}
	if in.ParentIssueID != nil {
		parentID, err := primitive.ObjectIDFromHex(*in.ParentIssueID)
		if err != nil {
			return nil, domain.Invalid("invalid parentIssueId")
		}
		filter.ParentIssueID = &parentID
	}

	return s.issues.List(ctx, filter)
}

// Search runs a text search within one organization. An empty query returns
// an empty result rather than an error.
func (s *IssueService) Search(ctx context.Context, actorID primitive.ObjectID, in ports.SearchIssuesInput) ([]*domain.Issue, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return []*domain.Issue{}, nil
	}

	if strings.TrimSpace(in.OrganizationID) == "" {
		return nil, domain.Invalid("organizationId is required")
	}
	orgID, err := primitive.ObjectIDFromHex(strings.TrimSpace(in.OrganizationID))
	if err != nil {
		return nil, domain.Invalid("invalid organizationId")
	}
	if err := s.requireMembership(ctx, orgID, actorID); err != nil {
		return nil, err
	}

	return s.issues.Search(ctx, orgID, query)
}

func (s *IssueService) Delete(ctx context.Context, actorID, issueID primitive.ObjectID) error {
	issue, err := s.issues.FindByID(ctx, issueID)
	if err != nil {
		return err
	}
	if err := s.requireMembership(ctx, issue.OrganizationID, actorID); err != nil {
		return err
	}

	if err := s.issues.Delete(ctx, issueID); err != nil {
		return err
	}

	s.record(domain.AuditIssueDeleted, issue.OrganizationID, actorID, issueID)
	return nil
}

func (s *IssueService) requireMembership(ctx context.Context, orgID, userID primitive.ObjectID) error {
	_, err := s.orgs.FindByIDForMember(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return domain.ErrNotMember
		}
		return err
	}
	return nil
}

func (s *IssueService) record(action string, orgID, actorID, subjectID primitive.ObjectID) {
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
