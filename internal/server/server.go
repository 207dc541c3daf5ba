package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/audit/domain"
	authdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/auth/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/clock"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/config"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/batch"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/pdf"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/document/render"
	entrydomain "github.com/mrigajana-makstark/makstarkrepo2/internal/entry/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/observability/logger"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/observability/metrics"
	pricingdomain "github.com/mrigajana-makstark/makstarkrepo2/internal/pricing/domain"
	ratedomain "github.com/mrigajana-makstark/makstarkrepo2/internal/rate/domain"
	"github.com/mrigajana-makstark/makstarkrepo2/internal/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Server wires the HTTP surface to the domain services.
type Server struct {
	cfg    config.Config
	log    *zap.Logger
	engine *gin.Engine

	auth     authdomain.Service
	issuer   *token.Issuer
	rates    ratedomain.Service
	pricing  pricingdomain.Service
	entries  entrydomain.Service
	renderer render.Renderer
	pdf      pdf.Engine
	packager *batch.Packager
	audit    auditdomain.Service

	registry *prometheus.Registry
	limiter  *loginLimiter
}

type ServerParam struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Engine   *gin.Engine
	Clock    clock.Clock
	Auth     authdomain.Service
	Issuer   *token.Issuer
	Rates    ratedomain.Service
	Pricing  pricingdomain.Service
	Entries  entrydomain.Service
	Renderer render.Renderer
	PDF      pdf.Engine
	Packager *batch.Packager
	Audit    auditdomain.Service
	Registry *prometheus.Registry
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	return engine
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:      p.Config,
		log:      p.Log.Named("server"),
		engine:   p.Engine,
		auth:     p.Auth,
		issuer:   p.Issuer,
		rates:    p.Rates,
		pricing:  p.Pricing,
		entries:  p.Entries,
		renderer: p.Renderer,
		pdf:      p.PDF,
		packager: p.Packager,
		audit:    p.Audit,
		registry: p.Registry,
		limiter:  newLoginLimiter(p.Clock, loginRateLimit, loginRateWindow),
	}
}

func (s *Server) RegisterRoutes() {
	s.engine.GET("/", s.Root)
	s.engine.GET("/healthz", s.Healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	s.engine.POST("/auth/login", s.Login)
	s.engine.POST("/token", s.TokenLogin)
	s.engine.GET("/me", s.Me)

	s.engine.POST("/calculate-amount", s.CalculateAmount)
	s.engine.POST("/generate-offer", s.GenerateOffer)
	s.engine.POST("/generate-offer-pdf", s.GenerateOfferPDF)
	s.engine.POST("/generate-offer-batch-zip", s.GenerateOfferBatchZip)
	s.engine.POST("/process-entry", s.ProcessEntry)
	s.engine.POST("/generate-entry-pdf", s.GenerateEntryPDF)
	s.engine.GET("/generate-pdf", s.GeneratePlaceholderPDF)
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Mak Stark API is running"})
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}
