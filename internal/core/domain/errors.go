package domain

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidTokenSubject = errors.New("invalid token subject")
	ErrTooManyAttempts     = errors.New("too many login attempts")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already exists")

	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationKeyTaken = errors.New("organization key already exists")

	ErrIssueNotFound = errors.New("issue not found")

	ErrNotMember = errors.New("not a member of this organization")
	ErrNotOwner  = errors.New("only the organization owner may do this")
)

// ValidationError marks structural, format, or cross-reference failures in
// client input. The reason is safe to return to the caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Invalid builds a ValidationError.
func Invalid(reason string) error { return &ValidationError{Reason: reason} }
