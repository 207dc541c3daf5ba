package auth

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(service.NewService),
)
