package excel

import (
	"context"
	"io"

	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
)

type Provider interface {
	// SalesReport renders one row per sale with a tax breakdown.
	SalesReport(ctx context.Context, sales []saledomain.Response) (io.Reader, error)
	SaleSheet(ctx context.Context, sale saledomain.Response) (io.Reader, error)
}
