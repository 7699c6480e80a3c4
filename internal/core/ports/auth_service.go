package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
)

// TokenVerifier resolves a bearer token to the user id embedded as its
// subject. The transport's auth middleware is its only caller.
type TokenVerifier interface {
	Verify(token string) (primitive.ObjectID, error)
}

// SignupInput carries the signup payload after transport-level binding.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput carries the login payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is returned on successful signup or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService defines the account use-cases.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Profile returns the account behind an authenticated user id.
	Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
}
