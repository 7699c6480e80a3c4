package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

// LoginThrottle abstracts the failed-login counter (Redis). A nil throttle
// disables throttling.
type LoginThrottle interface {
	TooManyFailures(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements signup, login, and profile lookup.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenService
	throttle LoginThrottle
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, throttle LoginThrottle) *AuthService {
	return &AuthService{users: users, tokens: tokens, throttle: throttle}
}

func validateSignup(in ports.SignupInput) error {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Password) == "" {
		return domain.Invalid("all fields are required")
	}
	if !strings.Contains(in.Email, "@") {
		return domain.Invalid("invalid email")
	}
	if len(in.Password) < 8 {
		return domain.Invalid("password must be at least 8 characters")
	}
	return nil
}

func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Password) == "" {
		return nil, domain.Invalid("email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if s.throttle != nil {
		// Throttle failures are non-fatal: a dead Redis must not lock everyone out.
		if blocked, err := s.throttle.TooManyFailures(ctx, email); err == nil && blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		if s.throttle != nil {
			_ = s.throttle.RecordFailure(ctx, email)
		}
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, email)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
