package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// IssueStatus is the canonical lifecycle state of an issue.
type IssueStatus string

const (
	StatusTodo       IssueStatus = "todo"
	StatusInProgress IssueStatus = "in_progress"
	StatusInReview   IssueStatus = "in_review"
	StatusDone       IssueStatus = "done"
)

// NormalizeStatus maps a raw status string to its canonical value.
// "backlog" is a legacy alias for in_review kept for older clients; the
// mapping is a compatibility contract and must not change silently.
func NormalizeStatus(s string) (IssueStatus, bool) {
	switch s {
	case "todo":
		return StatusTodo, true
	case "in_progress":
		return StatusInProgress, true
	case "in_review":
		return StatusInReview, true
	case "backlog":
		return StatusInReview, true
	case "done":
		return StatusDone, true
	default:
		return "", false
	}
}

// Issue belongs to exactly one organization. AssigneeID must reference a
// current member of that organization and ParentIssueID an issue of the same
// organization; both are weak references validated at write time only.
type Issue struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"`
	OrganizationID primitive.ObjectID  `bson:"organizationId"`
	Title          string              `bson:"title"`
	Description    string              `bson:"description"`
	Status         IssueStatus         `bson:"status"`
	AssigneeID     *primitive.ObjectID `bson:"assigneeId,omitempty"`
	ParentIssueID  *primitive.ObjectID `bson:"parentIssueId,omitempty"`
}
