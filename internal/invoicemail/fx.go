package invoicemail

import (
	"context"

	"github.com/smallbiznis/comercio/internal/config"
	"github.com/smallbiznis/comercio/internal/providers/email"
	"github.com/smallbiznis/comercio/internal/providers/pdf"
	saledomain "github.com/smallbiznis/comercio/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("invoicemail",
	fx.Provide(New),
	fx.Invoke(registerLifecycle),
)

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	PDF   pdf.Provider
	Email email.Provider
}

func New(p Params) (*Dispatcher, saledomain.InvoiceDispatcher) {
	d := NewDispatcher(p.Log, p.PDF, p.Email, p.Cfg.MailQueueSize)
	return d, d
}

func registerLifecycle(lc fx.Lifecycle, d *Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Stop()
			return nil
		},
	})
}
