package handler

type createOrganizationRequest struct {
	Name string `json:"name" validate:"required"`
	Key  string `json:"key"  validate:"required,min=2,max=8"`
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type organizationResponse struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Key       string   `json:"key"`
	OwnerID   string   `json:"ownerId"`
	MemberIDs []string `json:"memberIds"`
}

type okResponse struct {
	OK bool `json:"ok"`
}
