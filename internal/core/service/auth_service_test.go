package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dazabaze/issue-tracker/internal/core/domain"
	"github.com/dazabaze/issue-tracker/internal/core/ports"
)

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}

func newAuthService(users ports.UserRepository, throttle LoginThrottle) *AuthService {
	return NewAuthService(users, NewTokenService("secret", time.Hour), throttle)
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	res, err := svc.Signup(context.Background(), ports.SignupInput{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if res.User.Email != "alice@example.com" {
		t.Fatalf("email not lowercased: %s", res.User.Email)
	}
	if bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("longenough")) != nil {
		t.Fatalf("stored hash does not match password")
	}

	subject, err := NewTokenService("secret", time.Hour).Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token invalid: %v", err)
	}
	if subject != res.User.ID {
		t.Fatalf("token subject %s does not match user %s", subject.Hex(), res.User.ID.Hex())
	}
}

func TestAuthService_Signup_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	cases := []ports.SignupInput{
		{Email: "", Name: "x", Password: "longenough"},
		{Email: "a@b.com", Name: "  ", Password: "longenough"},
		{Email: "not-an-email", Name: "x", Password: "longenough"},
		{Email: "a@b.com", Name: "x", Password: "short"},
	}
	for _, in := range cases {
		_, err := svc.Signup(context.Background(), in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Signup(%+v): expected ValidationError, got %v", in, err)
		}
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	in := ports.SignupInput{Email: "bob@example.com", Name: "Bob", Password: "longenough"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(5)
	svc := newAuthService(repo, throttle)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Email: "carol@example.com", Name: "Carol", Password: "s3cretpass"}); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	throttle.failures["carol@example.com"] = 2
	res, err := svc.Login(context.Background(), ports.LoginInput{Email: "carol@example.com", Password: "s3cretpass"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if _, blocked := throttle.failures["carol@example.com"]; blocked {
		t.Fatalf("successful login must reset the failure counter")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(5)
	svc := newAuthService(repo, throttle)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{Email: "dave@example.com", Name: "Dave", Password: "goodpass1"})
	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "dave@example.com", Password: "badpass"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures["dave@example.com"] != 1 {
		t.Fatalf("failure not recorded")
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "whatever1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle(5)
	svc := newAuthService(repo, throttle)

	_, _ = svc.Signup(context.Background(), ports.SignupInput{Email: "eve@example.com", Name: "Eve", Password: "goodpass1"})
	throttle.failures["eve@example.com"] = 5

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "eve@example.com", Password: "goodpass1"}); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, nil)

	res, err := svc.Signup(context.Background(), ports.SignupInput{Email: "frank@example.com", Name: "Frank", Password: "longenough"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, err := svc.Profile(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if user.Name != "Frank" {
		t.Fatalf("unexpected user: %+v", user)
	}
}
