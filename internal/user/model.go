package user

import (
	"net/http"
	"time"

	"github.com/ukk/facility-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrUsernameTaken      = apperror.New(http.StatusConflict, "username already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password")
	ErrUsernameRequired   = apperror.New(http.StatusBadRequest, "username is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
	ErrCannotDeleteSelf   = apperror.New(http.StatusBadRequest, "cannot delete your own account")
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is an account that can sign in and submit reservations.
type User struct {
	ID           string // UUID
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Filter defines filter options for listing users.
type Filter struct {
	Username string // substring match
	Role     Role

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
