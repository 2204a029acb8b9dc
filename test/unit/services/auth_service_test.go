package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	config "github.com/threat0512/HealthFactAI/configs"
	impl "github.com/threat0512/HealthFactAI/internal/application/services"
	"github.com/threat0512/HealthFactAI/internal/core/domain/auth"
	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
	tmocks "github.com/threat0512/HealthFactAI/test/mocks"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, testJWTConfig(), nil)

	_, err := svc.Register(context.Background(), &auth.RegisterRequest{Username: "alice", Password: "12345"})
	if err == nil || !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected short-password error, got %v", err)
	}
}

func TestRegisterRejectsShortUsername(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, testJWTConfig(), nil)

	_, err := svc.Register(context.Background(), &auth.RegisterRequest{Username: "  ab  ", Password: "longenough"})
	if err == nil || !strings.Contains(err.Error(), "username") {
		t.Fatalf("expected short-username error, got %v", err)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	repo := &tmocks.UserRepositoryMock{
		ExistsUsernameFn: func(ctx context.Context, username string) (bool, error) { return true, nil },
	}
	svc := impl.NewAuthService(repo, testJWTConfig(), nil)

	_, err := svc.Register(context.Background(), &auth.RegisterRequest{Username: "alice", Password: "longenough"})
	if err == nil || err.Error() != "username already registered" {
		t.Fatalf("expected duplicate-username error, got %v", err)
	}
}

func TestRegisterHashesPasswordAndInitializesFacts(t *testing.T) {
	var created *user.User
	repo := &tmocks.UserRepositoryMock{
		CreateFn: func(ctx context.Context, u *user.User) error {
			u.ID = 7
			created = u
			return nil
		},
	}
	svc := impl.NewAuthService(repo, testJWTConfig(), nil)

	u, err := svc.Register(context.Background(), &auth.RegisterRequest{Username: " alice ", Password: "longenough", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created == nil || u.ID != 7 {
		t.Fatalf("expected repository create with assigned id, got %+v", u)
	}
	if u.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", u.Username)
	}
	if u.FactsLearned != "[]" {
		t.Fatalf("expected empty facts history, got %q", u.FactsLearned)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	repo := &tmocks.UserRepositoryMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
			return &user.User{ID: 7, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := impl.NewAuthService(repo, testJWTConfig(), nil)

	tokens, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "alice", Password: "longenough"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if tokens.TokenType != "bearer" || tokens.AccessToken == "" {
		t.Fatalf("unexpected token response %+v", tokens)
	}

	claims, err := svc.VerifyToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Subject != "7" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	repo := &tmocks.UserRepositoryMock{
		GetByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
			return &user.User{ID: 7, Username: "alice", PasswordHash: string(hash)}, nil
		},
	}
	svc := impl.NewAuthService(repo, testJWTConfig(), nil)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "alice", Password: "wrong"})
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, testJWTConfig(), nil)

	_, err := svc.Login(context.Background(), &auth.LoginRequest{Username: "ghost", Password: "whatever"})
	if err == nil || err.Error() != "invalid credentials" {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	svc := impl.NewAuthService(&tmocks.UserRepositoryMock{}, testJWTConfig(), nil)

	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
