package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ukk/facility-booking-backend/internal/auth"
	"github.com/ukk/facility-booking-backend/internal/logger"
)

type CreateRequest struct {
	Username string
	Email    string
	Password string
	Role     Role
}

// Service defines business logic related to users.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Delete(ctx context.Context, actorID, id string) error
	// EnsureAdmin creates the given admin account if no user with that username exists.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 6,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	username := normalizeUsername(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
	}

	// Uniqueness is enforced by the database; the repository maps the violation to ErrUsernameTaken.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by username: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrCannotDeleteSelf
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, normalizeUsername(username))
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	u, err := s.Create(ctx, CreateRequest{Username: username, Password: password, Role: RoleAdmin})
	if err != nil {
		// Another instance may have created it concurrently.
		if errors.Is(err, ErrUsernameTaken) {
			return nil
		}
		return err
	}
	logger.Info("bootstrap admin created", "user_id", u.ID, "username", u.Username)
	return nil
}

// normalizeUsername trims spaces and lowercases the username.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
