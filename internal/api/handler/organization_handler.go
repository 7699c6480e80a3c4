package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dazabaze/issue-tracker/internal/api/metrics"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

// OrganizationHandler handles HTTP requests for organization operations.
type OrganizationHandler struct {
	service ports.OrganizationService
}

func NewOrganizationHandler(service ports.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// Create handles POST /api/organizations.
func (h *OrganizationHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.service.Create(c.Request().Context(), userID, ports.CreateOrganizationInput{
		Name: req.Name,
		Key:  req.Key,
	})
	if err != nil {
		return err
	}

	metrics.OrganizationsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toOrganizationResponse(org))
}

// List handles GET /api/organizations. Only organizations the caller
// belongs to are returned.
func (h *OrganizationHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	orgs, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrganizationResponses(orgs))
}

// Get handles GET /api/organizations/:id.
func (h *OrganizationHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	orgID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	org, err := h.service.Get(c.Request().Context(), userID, orgID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrganizationResponse(org))
}

// Delete handles DELETE /api/organizations/:id. Owner only.
func (h *OrganizationHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	orgID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, orgID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, okResponse{OK: true})
}

// AddMember handles POST /api/organizations/:id/members. Owner only.
func (h *OrganizationHandler) AddMember(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	orgID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	var req addMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	org, err := h.service.AddMember(c.Request().Context(), userID, orgID, req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrganizationResponse(org))
}

// Members handles GET /api/organizations/:id/members.
func (h *OrganizationHandler) Members(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	orgID, err := pathObjectID(c, "id")
	if err != nil {
		return err
	}

	users, err := h.service.Members(c.Request().Context(), userID, orgID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponses(users))
}
