package sale

import (
	"github.com/smallbiznis/comercio/internal/sale/repository"
	"github.com/smallbiznis/comercio/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
