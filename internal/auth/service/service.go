package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"leadops_backend/internal/auth/password"
	"leadops_backend/internal/auth/repository"
	"leadops_backend/internal/auth/token"
	"leadops_backend/internal/events"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/config"
	"leadops_backend/platform/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")

const accessTokenType = "access"

// TokenPair bundles the short-lived access token with its refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service implements registration, login and session refresh for admin users.
type Service struct {
	repo repository.Repository
	cfg  config.AuthServiceConfig
	bus  events.Bus
	log  *logger.Logger
}

// New creates the auth service.
func New(repo repository.Repository, cfg config.AuthServiceConfig, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, bus: bus, log: log}
}

// Register creates a new admin account. Registration is gated behind a shared
// key so the endpoint can stay reachable without being open to the public.
func (s *Service) Register(ctx context.Context, email, plainPassword, registrationKey string) (repository.User, error) {
	adminKey := s.cfg.GetAdminRegistrationKey()
	if adminKey == "" || registrationKey != adminKey {
		s.log.AuthEvent("register", email, false, "invalid registration key")
		return repository.User{}, apperr.Forbidden("invalid registration key")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return repository.User{}, err
	}

	user, err := s.repo.CreateUser(ctx, strings.ToLower(strings.TrimSpace(email)), hash, []string{"admin"})
	if err != nil {
		return repository.User{}, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.UserRegistered{
			BaseEvent: events.NewBaseEvent(),
			UserID:    user.ID,
			Email:     user.Email,
		})
	}
	s.log.AuthEvent("register", user.Email, true, "")
	return user, nil
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return TokenPair{}, ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return TokenPair{}, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}
	s.log.AuthEvent("login", user.Email, true, "")
	return pair, nil
}

// Refresh rotates a refresh token, revoking the old one.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return TokenPair{}, ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return TokenPair{}, ErrTokenExpired
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return TokenPair{}, ErrTokenInvalid
	}

	_ = s.repo.RevokeRefreshToken(ctx, hash)
	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token. Idempotent.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// Me returns the account record behind an authenticated user ID.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, user repository.User) (TokenPair, error) {
	accessToken, err := s.signJWT(user.ID, user.Roles, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return TokenPair{}, err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, user.ID, hash, expiresAt); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) signJWT(userID uuid.UUID, roles []string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"type":  accessTokenType,
		"roles": roles,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
