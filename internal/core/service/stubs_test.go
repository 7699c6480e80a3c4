package service

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *user
	if clone.ID.IsZero() {
		clone.ID = primitive.NewObjectID()
	}
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubOrgRepo struct {
	orgs map[primitive.ObjectID]*domain.Organization
}

func newStubOrgRepo() *stubOrgRepo {
	return &stubOrgRepo{orgs: make(map[primitive.ObjectID]*domain.Organization)}
}

func (r *stubOrgRepo) Insert(_ context.Context, org *domain.Organization) error {
	clone := *org
	r.orgs[clone.ID] = &clone
	return nil
}

func (r *stubOrgRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	out := *o
	return &out, nil
}

func (r *stubOrgRepo) FindByIDForMember(_ context.Context, id, userID primitive.ObjectID) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok || !o.HasMember(userID) {
		return nil, domain.ErrOrganizationNotFound
	}
	out := *o
	return &out, nil
}

func (r *stubOrgRepo) FindByKey(_ context.Context, key string) (*domain.Organization, error) {
	for _, o := range r.orgs {
		if o.Key == key {
			out := *o
			return &out, nil
		}
	}
	return nil, domain.ErrOrganizationNotFound
}

func (r *stubOrgRepo) ListForMember(_ context.Context, userID primitive.ObjectID) ([]*domain.Organization, error) {
	var out []*domain.Organization
	for _, o := range r.orgs {
		if o.HasMember(userID) {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubOrgRepo) AddMember(_ context.Context, id, userID primitive.ObjectID) (*domain.Organization, error) {
	o, ok := r.orgs[id]
	if !ok {
		return nil, domain.ErrOrganizationNotFound
	}
	if !o.HasMember(userID) {
		o.MemberIDs = append(o.MemberIDs, userID)
	}
	out := *o
	return &out, nil
}

func (r *stubOrgRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.orgs[id]; !ok {
		return domain.ErrOrganizationNotFound
	}
	delete(r.orgs, id)
	return nil
}

type stubIssueRepo struct {
	issues map[primitive.ObjectID]*domain.Issue
	order  []primitive.ObjectID
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{issues: make(map[primitive.ObjectID]*domain.Issue)}
}

func (r *stubIssueRepo) Insert(_ context.Context, issue *domain.Issue) error {
	clone := *issue
	r.issues[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	return nil
}

func (r *stubIssueRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Issue, error) {
	i, ok := r.issues[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	out := *i
	return &out, nil
}

func (r *stubIssueRepo) FindByIDInOrganization(_ context.Context, id, orgID primitive.ObjectID) (*domain.Issue, error) {
	i, ok := r.issues[id]
	if !ok || i.OrganizationID != orgID {
		return nil, domain.ErrIssueNotFound
	}
	out := *i
	return &out, nil
}

func (r *stubIssueRepo) List(_ context.Context, filter ports.ListIssuesFilter) ([]*domain.Issue, error) {
	out := []*domain.Issue{}
	for idx := len(r.order) - 1; idx >= 0; idx-- {
		i, ok := r.issues[r.order[idx]]
		if !ok || i.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.ParentIssueID != nil {
			if i.ParentIssueID == nil || *i.ParentIssueID != *filter.ParentIssueID {
				continue
			}
		}
		clone := *i
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubIssueRepo) Search(_ context.Context, orgID primitive.ObjectID, query string) ([]*domain.Issue, error) {
	out := []*domain.Issue{}
	for _, id := range r.order {
		i, ok := r.issues[id]
		if !ok || i.OrganizationID != orgID {
			continue
		}
		if strings.Contains(i.Title, query) || strings.Contains(i.Description, query) {
			clone := *i
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubIssueRepo) Update(_ context.Context, id primitive.ObjectID, issue *domain.Issue) (*domain.Issue, error) {
	if _, ok := r.issues[id]; !ok {
		return nil, domain.ErrIssueNotFound
	}
	clone := *issue
	clone.ID = id
	r.issues[id] = &clone
	out := clone
	return &out, nil
}

func (r *stubIssueRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.issues[id]; !ok {
		return domain.ErrIssueNotFound
	}
	delete(r.issues, id)
	return nil
}

func (r *stubIssueRepo) DeleteByOrganization(_ context.Context, orgID primitive.ObjectID) error {
	for id, i := range r.issues {
		if i.OrganizationID == orgID {
			delete(r.issues, id)
		}
	}
	return nil
}

type stubAuditRecorder struct {
	events []domain.AuditEvent
}

func (r *stubAuditRecorder) Record(event domain.AuditEvent) {
	r.events = append(r.events, event)
}

func (r *stubAuditRecorder) actions() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}
