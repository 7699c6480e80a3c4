package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions recorded for every mutation.
const (
	AuditOrganizationCreated = "organization.created"
	AuditOrganizationDeleted = "organization.deleted"
	AuditMemberAdded         = "organization.member_added"
	AuditIssueCreated        = "issue.created"
	AuditIssueUpdated        = "issue.updated"
	AuditIssueDeleted        = "issue.deleted"
)

// AuditEvent records who did what inside an organization. Events are written
// asynchronously and best-effort; they carry no authorization semantics.
type AuditEvent struct {
	Action         string             `bson:"action"`
	OrganizationID primitive.ObjectID `bson:"organizationId"`
	ActorID        primitive.ObjectID `bson:"actorId"`
	SubjectID      primitive.ObjectID `bson:"subjectId"`
	At             time.Time          `bson:"at"`
}
