package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Search string
}

type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type UpdateRequest struct {
	ID          string
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type Response struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidDescription = errors.New("invalid_description")
	ErrConflict           = errors.New("conflict")
	ErrInUse              = errors.New("category_in_use")
)
