package observability

import (
	"github.com/mrigajana-makstark/makstarkrepo2/internal/observability/logger"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/observability/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(func() *prometheus.Registry {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		return reg
	}),
	fx.Provide(metrics.NewHTTPMetrics),
)
