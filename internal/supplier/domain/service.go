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
	Name         string  `json:"name"`
	InternalCode string  `json:"internal_code"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Status       string  `json:"status"`
}

type UpdateRequest struct {
	ID           string
	Name         *string `json:"name"`
	InternalCode *string `json:"internal_code"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Status       *string `json:"status"`
}

type Response struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	InternalCode string    `json:"internal_code,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var (
	ErrNotFound          = errors.New("not_found")
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidCode       = errors.New("invalid_internal_code")
	ErrInvalidPhone      = errors.New("invalid_phone")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrNameTaken         = errors.New("name_taken")
	ErrInternalCodeTaken = errors.New("internal_code_taken")
	ErrConflict          = errors.New("conflict")
)
