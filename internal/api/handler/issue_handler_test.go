package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

type stubIssueService struct {
	createFn func(ctx context.Context, actorID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error)
	getFn    func(ctx context.Context, actorID, issueID primitive.ObjectID) (*domain.Issue, error)
	listFn   func(ctx context.Context, actorID primitive.ObjectID, in ports.ListIssuesInput) ([]*domain.Issue, error)
	searchFn func(ctx context.Context, actorID primitive.ObjectID, in ports.SearchIssuesInput) ([]*domain.Issue, error)
	updateFn func(ctx context.Context, actorID, issueID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error)
	deleteFn func(ctx context.Context, actorID, issueID primitive.ObjectID) error
}

func (s *stubIssueService) Create(ctx context.Context, actorID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
	return s.createFn(ctx, actorID, in)
}

func (s *stubIssueService) Get(ctx context.Context, actorID, issueID primitive.ObjectID) (*domain.Issue, error) {
	return s.getFn(ctx, actorID, issueID)
}

func (s *stubIssueService) List(ctx context.Context, actorID primitive.ObjectID, in ports.ListIssuesInput) ([]*domain.Issue, error) {
	return s.listFn(ctx, actorID, in)
}

func (s *stubIssueService) Search(ctx context.Context, actorID primitive.ObjectID, in ports.SearchIssuesInput) ([]*domain.Issue, error) {
	return s.searchFn(ctx, actorID, in)
}

func (s *stubIssueService) Update(ctx context.Context, actorID, issueID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
	return s.updateFn(ctx, actorID, issueID, in)
}

func (s *stubIssueService) Delete(ctx context.Context, actorID, issueID primitive.ObjectID) error {
	return s.deleteFn(ctx, actorID, issueID)
}

func TestIssueHandler_Create_Success(t *testing.T) {
	actor := primitive.NewObjectID()
	orgID := primitive.NewObjectID()
	issueID := primitive.NewObjectID()
	stub := &stubIssueService{
		createFn: func(ctx context.Context, actorID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
			if actorID != actor {
				t.Fatalf("unexpected actor: %s", actorID.Hex())
			}
			if in.Status != "backlog" {
				t.Fatalf("status must pass through raw, got %s", in.Status)
			}
			return &domain.Issue{
				ID: issueID, OrganizationID: orgID,
				Title: in.Title, Description: in.Description,
				Status: domain.StatusInReview,
			}, nil
		},
	}
	h := NewIssueHandler(stub)

	body := `{"organizationId":"` + orgID.Hex() + `","title":"Broken login","description":"500 on submit","status":"backlog"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/issues", body)
	c.Set("user_id", actor)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != issueID.Hex() || resp["status"] != "in_review" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, present := resp["assigneeId"]; present {
		t.Fatalf("absent assignee must be omitted from json")
	}
}

func TestIssueHandler_Create_MissingFields(t *testing.T) {
	stub := &stubIssueService{
		createFn: func(ctx context.Context, actorID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/issues", `{"title":"only a title"}`)
	c.Set("user_id", primitive.NewObjectID())

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestIssueHandler_List_ParentFilter(t *testing.T) {
	orgID := primitive.NewObjectID()
	parentID := primitive.NewObjectID()
	stub := &stubIssueService{
		listFn: func(ctx context.Context, actorID primitive.ObjectID, in ports.ListIssuesInput) ([]*domain.Issue, error) {
			if in.OrganizationID != orgID.Hex() {
				t.Fatalf("organizationId not forwarded: %s", in.OrganizationID)
			}
			if in.ParentIssueID == nil || *in.ParentIssueID != parentID.Hex() {
				t.Fatalf("parentIssueId not forwarded: %v", in.ParentIssueID)
			}
			return []*domain.Issue{}, nil
		},
	}
	h := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/issues?organizationId="+orgID.Hex()+"&parentIssueId="+parentID.Hex(), "")
	c.Set("user_id", primitive.NewObjectID())

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("empty list must render as [], got %q", body)
	}
}

func TestIssueHandler_List_NoParentFilter(t *testing.T) {
	stub := &stubIssueService{
		listFn: func(ctx context.Context, actorID primitive.ObjectID, in ports.ListIssuesInput) ([]*domain.Issue, error) {
			if in.ParentIssueID != nil {
				t.Fatalf("absent parentIssueId must stay nil")
			}
			return nil, nil
		},
	}
	h := NewIssueHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/issues?organizationId="+primitive.NewObjectID().Hex(), "")
	c.Set("user_id", primitive.NewObjectID())

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestIssueHandler_Search(t *testing.T) {
	orgID := primitive.NewObjectID()
	stub := &stubIssueService{
		searchFn: func(ctx context.Context, actorID primitive.ObjectID, in ports.SearchIssuesInput) ([]*domain.Issue, error) {
			if in.Query != "login" || in.OrganizationID != orgID.Hex() {
				t.Fatalf("query not forwarded: %+v", in)
			}
			return []*domain.Issue{
				{ID: primitive.NewObjectID(), OrganizationID: orgID, Title: "Broken login", Description: "d", Status: domain.StatusTodo},
			}, nil
		},
	}
	h := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodGet,
		"/api/issues/search?q=login&organizationId="+orgID.Hex(), "")
	c.Set("user_id", primitive.NewObjectID())

	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["title"] != "Broken login" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestIssueHandler_Update_NotFound(t *testing.T) {
	stub := &stubIssueService{
		updateFn: func(ctx context.Context, actorID, issueID primitive.ObjectID, in ports.IssueInput) (*domain.Issue, error) {
			return nil, domain.ErrIssueNotFound
		},
	}
	h := NewIssueHandler(stub)

	body := `{"organizationId":"` + primitive.NewObjectID().Hex() + `","title":"t","description":"d","status":"todo"}`
	c, _ := newTestContext(t, http.MethodPut, "/", body)
	c.Set("user_id", primitive.NewObjectID())
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := h.Update(c); !errors.Is(err, domain.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
}

func TestIssueHandler_Delete(t *testing.T) {
	issueID := primitive.NewObjectID()
	stub := &stubIssueService{
		deleteFn: func(ctx context.Context, actorID, id primitive.ObjectID) error {
			if id != issueID {
				t.Fatalf("unexpected issue id: %s", id.Hex())
			}
			return nil
		},
	}
	h := NewIssueHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/", "")
	c.Set("user_id", primitive.NewObjectID())
	c.SetParamNames("id")
	c.SetParamValues(issueID.Hex())

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
