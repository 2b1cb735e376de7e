package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]UserWithRoles, error)
	Get(ctx context.Context, id string) (*UserWithRoles, error)
	Create(ctx context.Context, req CreateRequest) (*UserWithRoles, error)
	Update(ctx context.Context, req UpdateRequest) (*UserWithRoles, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Search string
}

type CreateRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type UpdateRequest struct {
	ID       string
	FullName *string `json:"full_name"`
	Position *string `json:"position"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

// UserWithRoles pairs account fields with the resolved role list for the
// listing and detail flows.
type UserWithRoles struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Position  string    `json:"position"`
	Active    bool      `json:"active"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound        = errors.New("not_found")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidFullName = errors.New("invalid_full_name")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrEmailTaken      = errors.New("email_taken")
	ErrConflict        = errors.New("conflict")
)
