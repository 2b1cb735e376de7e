package excel

import "go.uber.org/fx"

var Module = fx.Module("providers.excel",
	fx.Provide(New),
)
