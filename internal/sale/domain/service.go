package domain

import (
	"context"
	"time"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Get(ctx context.Context, id string) (*Response, error)
	// Create runs the whole stock movement and insert in one transaction
	// and queues the invoice email after commit.
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	// Delete removes the sale and restores its stock atomically.
	Delete(ctx context.Context, id string) error
}

type ListRequest struct {
	Search string
	From   *time.Time
	To     *time.Time
}

type CreateRequest struct {
	ProductID string     `json:"product_id"`
	ClientID  string     `json:"client_id"`
	Quantity  int        `json:"quantity"`
	SoldAt    *time.Time `json:"sold_at"`
}

type UpdateRequest struct {
	ID       string
	ClientID *string    `json:"client_id"`
	Quantity *int       `json:"quantity"`
	SoldAt   *time.Time `json:"sold_at"`
}

type Response struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	ProductCode string    `json:"product_code,omitempty"`
	ClientID    string    `json:"client_id"`
	ClientName  string    `json:"client_name,omitempty"`
	ClientEmail *string   `json:"client_email,omitempty"`
	UserID      string    `json:"user_id"`
	SellerName  string    `json:"seller_name,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   int64     `json:"unit_price"`
	Total       int64     `json:"total"`
	SoldAt      time.Time `json:"sold_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
