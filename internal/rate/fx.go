package rate

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.service",
	fx.Provide(service.NewService),
)
