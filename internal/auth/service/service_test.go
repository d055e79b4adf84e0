package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"leadops_backend/internal/auth/repository"
	"leadops_backend/internal/events"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

type testAuthConfig struct {
	accessSecret    string
	registrationKey string
	accessTTL       time.Duration
	refreshTTL      time.Duration
}

func (c testAuthConfig) GetJWTAccessSecret() string        { return c.accessSecret }
func (c testAuthConfig) GetAccessTokenTTL() time.Duration  { return c.accessTTL }
func (c testAuthConfig) GetRefreshTokenTTL() time.Duration { return c.refreshTTL }
func (c testAuthConfig) GetAdminRegistrationKey() string   { return c.registrationKey }

func defaultTestConfig() testAuthConfig {
	return testAuthConfig{
		accessSecret:    "test-secret",
		registrationKey: "let-me-in",
		accessTTL:       time.Hour,
		refreshTTL:      24 * time.Hour,
	}
}

func newTestService(cfg testAuthConfig) (*Service, *repository.Memory, *events.InMemoryBus) {
	repo := repository.NewMemory()
	bus := events.NewInMemoryBus(logger.New("test"))
	return New(repo, cfg, bus, logger.New("test")), repo, bus
}

func TestRegisterRequiresValidKey(t *testing.T) {
	svc, _, _ := newTestService(defaultTestConfig())

	_, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "wrong-key")
	if err == nil {
		t.Fatal("expected error for wrong registration key")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindForbidden {
		t.Errorf("error = %v, want forbidden", err)
	}
}

func TestRegisterRejectedWhenKeyUnset(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.registrationKey = ""
	svc, _, _ := newTestService(cfg)

	if _, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", ""); err == nil {
		t.Fatal("expected registration to be closed when no key is configured")
	}
}

func TestRegisterCreatesAdminUser(t *testing.T) {
	svc, _, _ := newTestService(defaultTestConfig())

	user, err := svc.Register(context.Background(), "Admin@Leadops.pt", "s3cretpass", "let-me-in")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "admin@leadops.pt" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if len(user.Roles) != 1 || user.Roles[0] != "admin" {
		t.Errorf("roles = %v, want [admin]", user.Roles)
	}
	if user.PasswordHash == "s3cretpass" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService(defaultTestConfig())

	if _, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "let-me-in"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "admin@leadops.pt", "otherpass1", "let-me-in")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindConflict {
		t.Errorf("error = %v, want conflict", err)
	}
}

func TestLoginIssuesSignedAccessToken(t *testing.T) {
	cfg := defaultTestConfig()
	svc, _, _ := newTestService(cfg)

	user, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "let-me-in")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	pair, err := svc.Login(context.Background(), "admin@leadops.pt", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.RefreshToken == "" {
		t.Fatal("missing refresh token")
	}

	parsed, err := jwt.Parse(pair.AccessToken, func(token *jwt.Token) (any, error) {
		return []byte(cfg.accessSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("access token invalid: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID.String() {
		t.Errorf("sub = %v, want %s", claims["sub"], user.ID)
	}
	if claims["type"] != "access" {
		t.Errorf("type = %v, want access", claims["type"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(defaultTestConfig())

	if _, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "let-me-in"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(context.Background(), "admin@leadops.pt", "wrongpass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@leadops.pt", "s3cretpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newTestService(defaultTestConfig())

	if _, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "let-me-in"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	pair, err := svc.Login(context.Background(), "admin@leadops.pt", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// The old token must be revoked after rotation.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshExpiredToken(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.refreshTTL = -time.Minute
	svc, _, _ := newTestService(cfg)

	if _, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "let-me-in"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	pair, err := svc.Login(context.Background(), "admin@leadops.pt", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("error = %v, want ErrTokenExpired", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newTestService(defaultTestConfig())

	if _, err := svc.Register(context.Background(), "admin@leadops.pt", "s3cretpass", "let-me-in"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	pair, err := svc.Login(context.Background(), "admin@leadops.pt", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("error = %v, want ErrTokenInvalid", err)
	}
}
