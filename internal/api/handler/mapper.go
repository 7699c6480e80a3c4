package handler

import (
	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// Mapping between domain types and the wire schemas. ObjectIDs are always
// rendered as their 24-character hex form.

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Name:  u.Name,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toOrganizationResponse(o *domain.Organization) organizationResponse {
	members := make([]string, 0, len(o.MemberIDs))
	for _, id := range o.MemberIDs {
		members = append(members, id.Hex())
	}
	return organizationResponse{
		ID:        o.ID.Hex(),
		Name:      o.Name,
		Key:       o.Key,
		OwnerID:   o.OwnerID.Hex(),
		MemberIDs: members,
	}
}

func toOrganizationResponses(orgs []*domain.Organization) []organizationResponse {
	out := make([]organizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrganizationResponse(o))
	}
	return out
}

func toIssueResponse(i *domain.Issue) issueResponse {
	resp := issueResponse{
		ID:             i.ID.Hex(),
		OrganizationID: i.OrganizationID.Hex(),
		Title:          i.Title,
		Description:    i.Description,
		Status:         string(i.Status),
	}
	if i.AssigneeID != nil {
		hex := i.AssigneeID.Hex()
		resp.AssigneeID = &hex
	}
	if i.ParentIssueID != nil {
		hex := i.ParentIssueID.Hex()
		resp.ParentIssueID = &hex
	}
	return resp
}

func toIssueResponses(issues []*domain.Issue) []issueResponse {
	out := make([]issueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, toIssueResponse(i))
	}
	return out
}
