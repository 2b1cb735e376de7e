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
	// LowStockOnly keeps active products at or below their minimum stock.
	LowStockOnly bool
}

type CreateRequest struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	CategoryID      string     `json:"category_id"`
	SupplierID      *string    `json:"supplier_id"`
	Stock           int        `json:"stock"`
	MinStock        int        `json:"min_stock"`
	UnitPrice       int64      `json:"unit_price"`
	AcquisitionCost int64      `json:"acquisition_cost"`
	AcquiredAt      *time.Time `json:"acquired_at"`
	Active          *bool      `json:"active"`
}

type UpdateRequest struct {
	ID              string
	Code            *string    `json:"code"`
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	CategoryID      *string    `json:"category_id"`
	SupplierID      *string    `json:"supplier_id"`
	ClearSupplier   bool       `json:"clear_supplier"`
	Stock           *int       `json:"stock"`
	MinStock        *int       `json:"min_stock"`
	UnitPrice       *int64     `json:"unit_price"`
	AcquisitionCost *int64     `json:"acquisition_cost"`
	AcquiredAt      *time.Time `json:"acquired_at"`
	Active          *bool      `json:"active"`
}

type Response struct {
	ID              string     `json:"id"`
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Description     *string    `json:"description,omitempty"`
	CategoryID      string     `json:"category_id"`
	CategoryName    string     `json:"category_name,omitempty"`
	SupplierID      *string    `json:"supplier_id,omitempty"`
	SupplierName    *string    `json:"supplier_name,omitempty"`
	Stock           int        `json:"stock"`
	MinStock        int        `json:"min_stock"`
	UnitPrice       int64      `json:"unit_price"`
	AcquisitionCost int64      `json:"acquisition_cost"`
	AcquiredAt      *time.Time `json:"acquired_at,omitempty"`
	Active          bool       `json:"active"`
	LowStock        bool       `json:"low_stock"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

var (
	ErrNotFound         = errors.New("not_found")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidCode      = errors.New("invalid_code")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrInvalidSupplier  = errors.New("invalid_supplier")
	ErrInvalidStock     = errors.New("invalid_stock")
	ErrInvalidMinStock  = errors.New("invalid_min_stock")
	ErrInvalidUnitPrice = errors.New("invalid_unit_price")
	ErrInvalidCost      = errors.New("invalid_acquisition_cost")
	ErrCodeTaken        = errors.New("code_taken")
	ErrConflict         = errors.New("conflict")
)
