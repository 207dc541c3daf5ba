package pricing

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(service.NewService),
)
