package entry

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/entry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("entry.service",
	fx.Provide(service.NewService),
)
