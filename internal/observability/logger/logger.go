package logger

import (
	"context"

	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the root zap logger. Production gets JSON output,
// everything else the development console encoder.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = log.With(zap.String("service", "makstark-api"))
	zap.ReplaceGlobals(log)
	return log, nil
}

type ctxKey struct{}

// WithContext attaches a request-scoped logger to the context.
func WithContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// FromContext returns the request-scoped logger, falling back to the
// global one.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && log != nil {
			return log
		}
	}
	return zap.L()
}

var Module = fx.Module("observability.logger",
	fx.Provide(NewLogger),
)
