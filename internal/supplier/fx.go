package supplier

import (
	"github.com/smallbiznis/comercio/internal/supplier/repository"
	"github.com/smallbiznis/comercio/internal/supplier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
