package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"smart-pantry-chef/internal/infrastructure/config"
	"smart-pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service registration and login
type Service struct {
	store  UserStore
	tokens *TokenIssuer
	cost   int
}

// NewService creates an auth Service
func NewService(store UserStore, cfg config.AuthConfig) *Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		store:  store,
		tokens: NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		cost:   cost,
	}
}

// Tokens returns the issuer used for login tokens
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a hashed password. A taken email is reported
// by the store's unique constraint, not by a prior lookup.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.NewError(common.ErrCodeInvalidRequest, "Password must be at most 72 bytes", http.StatusBadRequest, err)
		}
		return nil, common.NewError(common.ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, err)
	}

	user := &User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: string(hash),
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, common.NewError(common.ErrCodeDuplicateEmail, "User already exists", http.StatusBadRequest, err)
		}
		common.LogError("Registration error", zap.Error(err))
		return nil, common.NewError(common.ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, err)
	}

	common.LogInfo("User registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and returns a signed token with the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, common.NewError(common.ErrCodeUserNotFound, "User not found", http.StatusNotFound, err)
		}
		common.LogError("Login error", zap.Error(err))
		return "", nil, common.NewError(common.ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, common.NewError(common.ErrCodeInvalidCredentials, "Invalid credentials", http.StatusUnauthorized, nil)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, common.NewError(common.ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, err)
	}

	return token, user, nil
}
