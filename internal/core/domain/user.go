package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// User models an authenticated account. Emails are stored lowercased and are
// unique across the system; the password hash never leaves the backend.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash"`
}
