package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dazabaze/issue-tracker/internal/api/metrics"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

// IssueHandler handles HTTP requests for issue operations.
type IssueHandler struct {
	service ports.IssueService
}

func NewIssueHandler(service ports.IssueService) *IssueHandler {
	return &IssueHandler{service: service}
}

func bindIssueRequest(c echo.Context) (ports.IssueInput, error) {
	var req issueRequest
	if err := c.Bind(&req); err != nil {
		return ports.IssueInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.IssueInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.IssueInput{
		OrganizationID: req.OrganizationID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		AssigneeID:     req.AssigneeID,
		ParentIssueID:  req.ParentIssueID,
	}, nil
}

// Create handles POST /api/issues.
func (h *IssueHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	in, err := bindIssueRequest(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}

	metrics.IssuesCreatedTotal.WithLabelValues(string(issue.Status)).Inc()
	return c.JSON(http.StatusCreated, toIssueResponse(issue))
}

// Get handles GET /api/issues/:id.
func (h *IssueHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	issueID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	issue, err := h.service.Get(c.Request().Context(), userID, issueID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponse(issue))
}

// List handles GET /api/issues?organizationId=...&parentIssueId=...
func (h *IssueHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	in := ports.ListIssuesInput{OrganizationID: c.QueryParam("organizationId")}
	if parent := c.QueryParam("parentIssueId"); parent != "" {
		in.ParentIssueID = &parent
	}

	issues, err := h.service.List(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponses(issues))
}

// Search handles GET /api/issues/search?q=...&organizationId=...
func (h *IssueHandler) Search(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	issues, err := h.service.Search(c.Request().Context(), userID, ports.SearchIssuesInput{
		OrganizationID: c.QueryParam("organizationId"),
		Query:          c.QueryParam("q"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponses(issues))
}

// Update handles PUT /api/issues/:id. The request body is a full document
// replacement validated through the same pipeline as Create.
func (h *IssueHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	issueID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	in, err := bindIssueRequest(c)
	if err != nil {
		return err
	}

	issue, err := h.service.Update(c.Request().Context(), userID, issueID, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toIssueResponse(issue))
}

// Delete handles DELETE /api/issues/:id.
func (h *IssueHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	issueID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, issueID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, okResponse{OK: true})
}
