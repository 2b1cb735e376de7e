// Package invoicemail delivers invoice emails off the request path. A
// bounded queue feeds a single worker; the sale that produced the
// invoice never waits on SMTP.
package invoicemail

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/smallbiznis/comercio/internal/billing"
	"github.com/smallbiznis/comercio/internal/providers/email"
	"github.com/smallbiznis/comercio/internal/providers/pdf"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"go.uber.org/zap"
)

const deliverTimeout = 30 * time.Second

type task struct {
	inv  saledomain.Invoice
	done chan error
}

type Dispatcher struct {
	log   *zap.Logger
	pdf   pdf.Provider
	email email.Provider

	queue chan task
	stop  chan struct{}
	wg    sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

func NewDispatcher(log *zap.Logger, pdfProvider pdf.Provider, emailProvider email.Provider, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Dispatcher{
		log:   log.Named("invoicemail"),
		pdf:   pdfProvider,
		email: emailProvider,
		queue: make(chan task, queueSize),
		stop:  make(chan struct{}),
	}
}

// Enqueue queues an invoice for delivery without blocking. The done
// channel is closed after the attempt; it carries the delivery error,
// if any, for callers that want to observe the outcome.
func (d *Dispatcher) Enqueue(inv saledomain.Invoice) (<-chan error, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return nil, false
	}

	t := task{inv: inv, done: make(chan error, 1)}
	select {
	case d.queue <- t:
		return t.done, true
	default:
		return nil, false
	}
}

func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case t := <-d.queue:
			d.deliver(t)
		case <-d.stop:
			// Drain what was accepted before shutdown.
			for {
				select {
				case t := <-d.queue:
					d.deliver(t)
				default:
					return
				}
			}
		}
	}
}

// Stop rejects new invoices, finishes the queued ones and returns.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.stop)
	d.wg.Wait()
}

func (d *Dispatcher) deliver(t task) {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	err := d.send(ctx, t.inv)
	if err != nil {
		d.log.Error("invoice email delivery failed",
			zap.String("sale_id", t.inv.SaleID),
			zap.String("client_email", t.inv.ClientEmail),
			zap.Error(err),
		)
	}
	t.done <- err
	close(t.done)
}

func (d *Dispatcher) send(ctx context.Context, inv saledomain.Invoice) error {
	doc, err := d.pdf.GenerateInvoice(ctx, inv)
	if err != nil {
		return fmt.Errorf("generate invoice pdf: %w", err)
	}
	raw, err := io.ReadAll(doc)
	if err != nil {
		return fmt.Errorf("read invoice pdf: %w", err)
	}

	subject := fmt.Sprintf("Your invoice %s", inv.SaleID)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Thank you for your purchase of %d x %s. The total was %s. Your invoice is attached.</p>",
		inv.ClientName, inv.Quantity, inv.ProductName, billing.FormatCents(inv.Total),
	)
	filename := fmt.Sprintf("invoice-%s.pdf", inv.SaleID)

	return d.email.SendWithAttachment(ctx, []string{inv.ClientEmail}, subject, body, filename, raw)
}
