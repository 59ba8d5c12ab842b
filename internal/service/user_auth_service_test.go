package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) *UserAuthService {
	t.Helper()

	dsn := fmt.Sprintf("file:user_auth_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "user-auth-test-secret"
	cfg.UserJWT.ExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 6

	return NewUserAuthService(cfg, repository.NewUserRepository(db))
}

func TestRegisterDefaultRoleCustomer(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register("buyer@example.com", "sunny123", "Ada Obi", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != constants.RoleCustomer {
		t.Fatalf("expected default role customer, got %s", user.Role)
	}
	if token == "" {
		t.Fatalf("expected token issued on register")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.Role != constants.RoleCustomer {
		t.Fatalf("expected customer role claim, got %s", claims.Role)
	}
}

func TestRegisterAffiliateRole(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	user, _, _, err := svc.Register("partner@example.com", "sunny123", "Efe Ade", constants.RoleAffiliate)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != constants.RoleAffiliate {
		t.Fatalf("expected affiliate role, got %s", user.Role)
	}
}

func TestRegisterRejectUnknownRole(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	_, _, _, err := svc.Register("ghost@example.com", "sunny123", "", "superuser")
	if !errors.Is(err, ErrRoleInvalid) {
		t.Fatalf("expected ErrRoleInvalid, got %v", err)
	}
}

func TestRegisterRejectShortPassword(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	_, _, _, err := svc.Register("short@example.com", "abc", "", "")
	if err == nil {
		t.Fatalf("expected weak password rejected")
	}
}

func TestRegisterRejectDuplicateEmail(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("dup@example.com", "sunny123", "", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, _, err := svc.Register("DUP@example.com", "sunny123", "", "")
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc := setupUserAuthServiceTest(t)

	if _, _, _, err := svc.Register("login@example.com", "sunny123", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login("login@example.com", "sunny123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "login@example.com" || token == "" {
		t.Fatalf("unexpected login result: %+v token=%q", user, token)
	}

	if _, _, _, err := svc.Login("login@example.com", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
