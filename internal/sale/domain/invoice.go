package domain

import "time"

// Invoice carries everything the billing email needs, detached from the
// database rows so it can outlive the request.
type Invoice struct {
	SaleID      string
	ProductName string
	ProductCode string
	Quantity    int
	UnitPrice   int64
	Total       int64
	SoldAt      time.Time
	ClientName  string
	ClientEmail string
	SellerName  string
}

// InvoiceDispatcher queues an invoice for delivery. Enqueue never
// blocks: accepted reports whether the invoice made it onto the queue,
// and done is closed once delivery has finished (or failed). Failures
// are logged, not surfaced to the sale.
type InvoiceDispatcher interface {
	Enqueue(inv Invoice) (done <-chan error, accepted bool)
}
