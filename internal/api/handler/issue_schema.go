package handler

// issueRequest is shared between create (POST /api/issues) and full-document
// update (PUT /api/issues/:id). assigneeId and parentIssueId are optional;
// a blank string means absent.
type issueRequest struct {
	OrganizationID string  `json:"organizationId" validate:"required"`
	Title          string  `json:"title"          validate:"required"`
	Description    string  `json:"description"    validate:"required"`
	Status         string  `json:"status"         validate:"required"`
	AssigneeID     *string `json:"assigneeId"`
	ParentIssueID  *string `json:"parentIssueId"`
}

type issueResponse struct {
	ID             string  `json:"_id"`
	OrganizationID string  `json:"organizationId"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Status         string  `json:"status"`
	AssigneeID     *string `json:"assigneeId,omitempty"`
	ParentIssueID  *string `json:"parentIssueId,omitempty"`
}
