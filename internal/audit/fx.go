package audit

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(service.NewService),
)
