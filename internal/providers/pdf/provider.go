package pdf

import (
	"context"
	"io"

	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
)

type Provider interface {
	GenerateInvoice(ctx context.Context, inv saledomain.Invoice) (io.Reader, error)
}
