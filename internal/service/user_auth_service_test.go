package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/roikaa/tamshopex/internal/config"
	"github.com/roikaa/tamshopex/internal/models"
	"github.com/roikaa/tamshopex/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) *UserAuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:userauthsvc_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-0123456789abcdef0123456789"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordMinLength = 8
	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register("Alice", "Alice@Example.com", "password-1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if token == "" || !expiresAt.After(time.Now()) {
		t.Fatalf("register should issue a future-dated token")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, _, _, err := svc.Login("alice@example.com", "password-1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, _, _, err := svc.Login("alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "password-1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email want ErrInvalidCredentials got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("Bob", "bob@example.com", "password-1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register("Bob Again", "BOB@example.com", "password-2"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email want ErrEmailExists got %v", err)
	}
	if _, _, _, err := svc.Register("Bad", "not-an-email", "password-1"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("bad email want ErrInvalidEmail got %v", err)
	}
	if _, _, _, err := svc.Register("Short", "short@example.com", "tiny"); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("short password want ErrPasswordTooShort got %v", err)
	}
}

func TestRegisterFallsBackToEmailLocalPart(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("   ", "carol@example.com", "password-1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Name != "carol" {
		t.Fatalf("name fallback want carol got %q", user.Name)
	}
}

func TestGetUserByID(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("Dave", "dave@example.com", "password-1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	got, err := svc.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	if got.Email != user.Email {
		t.Fatalf("email mismatch: %q", got.Email)
	}
	if _, err := svc.GetUserByID(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id want ErrNotFound got %v", err)
	}
}
