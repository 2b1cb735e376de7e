package invoicemail

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePDF struct {
	err error
}

func (f *fakePDF) GenerateInvoice(ctx context.Context, inv saledomain.Invoice) (io.Reader, error) {
	if f.err != nil {
		return nil, f.err
	}
	return bytes.NewReader([]byte("%PDF-1.7 " + inv.SaleID)), nil
}

type sentMail struct {
	to         []string
	subject    string
	body       string
	filename   string
	attachment []byte
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeEmail) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	return f.SendWithAttachment(ctx, to, subject, htmlBody, "", nil)
}

func (f *fakeEmail) SendWithAttachment(ctx context.Context, to []string, subject, htmlBody, filename string, attachment []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{
		to:         to,
		subject:    subject,
		body:       htmlBody,
		filename:   filename,
		attachment: attachment,
	})
	return nil
}

func (f *fakeEmail) last(t *testing.T) sentMail {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func testInvoice() saledomain.Invoice {
	return saledomain.Invoice{
		SaleID:      "42",
		ProductName: "Ground Coffee",
		ProductCode: "SKU-1",
		Quantity:    4,
		UnitPrice:   2500,
		Total:       10000,
		SoldAt:      time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		ClientName:  "Buyer Co",
		ClientEmail: "buyer@example.com",
		SellerName:  "Sally Seller",
	}
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("delivery did not finish")
		return nil
	}
}

func TestDispatcherDeliversInvoiceWithAttachment(t *testing.T) {
	mail := &fakeEmail{}
	d := NewDispatcher(zap.NewNop(), &fakePDF{}, mail, 4)
	d.Start()
	defer d.Stop()

	done, accepted := d.Enqueue(testInvoice())
	require.True(t, accepted)
	require.NoError(t, waitDone(t, done))

	got := mail.last(t)
	assert.Equal(t, []string{"buyer@example.com"}, got.to)
	assert.Equal(t, "Your invoice 42", got.subject)
	assert.Equal(t, "invoice-42.pdf", got.filename)
	assert.Contains(t, got.body, "Buyer Co")
	assert.Contains(t, got.body, "$100.00")
	assert.NotEmpty(t, got.attachment)
}

func TestDispatcherReportsDeliveryError(t *testing.T) {
	mail := &fakeEmail{err: errors.New("smtp down")}
	d := NewDispatcher(zap.NewNop(), &fakePDF{}, mail, 4)
	d.Start()
	defer d.Stop()

	done, accepted := d.Enqueue(testInvoice())
	require.True(t, accepted)

	err := waitDone(t, done)
	assert.ErrorContains(t, err, "smtp down")
}

func TestDispatcherReportsPDFError(t *testing.T) {
	mail := &fakeEmail{}
	d := NewDispatcher(zap.NewNop(), &fakePDF{err: errors.New("render failed")}, mail, 4)
	d.Start()
	defer d.Stop()

	done, accepted := d.Enqueue(testInvoice())
	require.True(t, accepted)

	err := waitDone(t, done)
	assert.ErrorContains(t, err, "render failed")
	mail.mu.Lock()
	assert.Empty(t, mail.sent)
	mail.mu.Unlock()
}

func TestDispatcherRejectsWhenQueueFull(t *testing.T) {
	// Worker never started, so the queue fills up.
	d := NewDispatcher(zap.NewNop(), &fakePDF{}, &fakeEmail{}, 1)

	_, accepted := d.Enqueue(testInvoice())
	require.True(t, accepted)

	done, accepted := d.Enqueue(testInvoice())
	assert.False(t, accepted)
	assert.Nil(t, done)
}

func TestDispatcherStopDrainsQueue(t *testing.T) {
	mail := &fakeEmail{}
	d := NewDispatcher(zap.NewNop(), &fakePDF{}, mail, 8)

	var dones []<-chan error
	for i := 0; i < 3; i++ {
		done, accepted := d.Enqueue(testInvoice())
		require.True(t, accepted)
		dones = append(dones, done)
	}

	d.Start()
	d.Stop()

	for _, done := range dones {
		require.NoError(t, waitDone(t, done))
	}

	mail.mu.Lock()
	assert.Len(t, mail.sent, 3)
	mail.mu.Unlock()

	_, accepted := d.Enqueue(testInvoice())
	assert.False(t, accepted)
}
