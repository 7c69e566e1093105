package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adamosign/models"
	"adamosign/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 24 * time.Hour

func authTokenKey(userID string) string {
	return "authtoken:" + userID
}

// Register creates an account and signs the new user in.
func (s *DefaultUserService) Register(req RegisterRequest) (*AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("all fields are required")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("a user with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &models.User{
		ID:           uuid.New().String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Repo.Create(rec); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(rec)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	rec, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if rec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.issueToken(rec)
}

// GetUserByID returns the account record.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}

// RevokeAuthToken drops the stored token hash so the current token stops
// validating.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	ctx := context.Background()
	if err := utils.GetAuthCacheClient().Del(ctx, authTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}
	return nil
}

// issueToken mints a JWT and stores its hash for the allow-list check done
// by the auth middleware.
func (s *DefaultUserService) issueToken(rec *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(rec.ID, rec.Email, authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	ctx := context.Background()
	if err := utils.GetAuthCacheClient().Set(ctx, authTokenKey(rec.ID), utils.HashToken(token), authTokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}
	return &AuthResponse{User: rec, Token: token}, nil
}
