package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/propertyhub/marketplace-api/internal/core/domain"
	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

const testSecret = "test-secret"

func registerInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
		Phone:    "+1-555-0100",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("registration must assign the user role, got %q", user.Role)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")) != nil {
		t.Error("stored hash must verify the original password")
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	in := registerInput()
	in.Email = "  Alice@Example.COM "

	user, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	in := registerInput()
	in.Name = ""

	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerInput()); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	registered, err := svc.Register(context.Background(), registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must parse with the signing secret: %v", err)
	}
	if claims["sub"] != registered.ID {
		t.Errorf("sub claim: expected %q, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Errorf("role claim: expected %q, got %v", domain.RoleUser, claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must expire")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := newStubUserRepo()
	svc := NewAuthService(users, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must read as bad credentials, got %v", err)
	}
}
