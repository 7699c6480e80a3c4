package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Organization is the tenancy boundary. Keys are upper-cased before storage
// and compared case-insensitively. The owner is always present in MemberIDs
// from creation onwards; ownership is the stronger predicate used for
// member addition and deletion.
type Organization struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Key       string               `bson:"key"`
	OwnerID   primitive.ObjectID   `bson:"ownerId"`
	MemberIDs []primitive.ObjectID `bson:"memberIds"`
}

// HasMember reports whether id is in the organization's member set.
func (o *Organization) HasMember(id primitive.ObjectID) bool {
	for _, m := range o.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether id is the organization's owner.
func (o *Organization) IsOwnedBy(id primitive.ObjectID) bool {
	return o.OwnerID == id
}
