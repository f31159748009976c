// Package server wires the HTTP surface: routing, middleware, request
// decoding and the error envelope.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	auditdomain "github.com/roomledger/roomledger/internal/audit/domain"
	"github.com/roomledger/roomledger/internal/config"
	metricdomain "github.com/roomledger/roomledger/internal/metric/domain"
	"github.com/roomledger/roomledger/internal/observability"
	"github.com/roomledger/roomledger/internal/observability/logger"
	"github.com/roomledger/roomledger/internal/observability/metrics"
	"github.com/roomledger/roomledger/internal/observability/tracing"
	summarydomain "github.com/roomledger/roomledger/internal/summary/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg        config.Config
	ObsCfg     observability.Config
	Log        *zap.Logger
	HTTPStats  *metrics.HTTPMetrics
	MetricSvc  metricdomain.Service
	SummarySvc summarydomain.Service
	AuditSvc   auditdomain.Service
}

// Server owns the gin engine and the services the handlers call.
type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	metricSvc  metricdomain.Service
	summarySvc summarydomain.Service
	auditSvc   auditdomain.Service
}

func New(p Params) *Server {
	s := &Server{
		cfg:        p.Cfg,
		log:        p.Log,
		metricSvc:  p.MetricSvc,
		summarySvc: p.SummarySvc,
		auditSvc:   p.AuditSvc,
	}
	s.engine = s.buildEngine(p)
	return s
}

// Engine exposes the router, mainly for handler tests.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) buildEngine(p Params) *gin.Engine {
	if s.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		logger.GinMiddleware(logger.MiddlewareConfig{
			Debug:           p.ObsCfg.Debug(),
			ErrorClassifier: classifyErrorForLog,
		}),
		tracing.GinMiddleware(),
		metrics.GinMiddleware(p.HTTPStats),
		ErrorHandlingMiddleware(),
		ActorMiddleware(),
	)

	engine.GET("/health", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/metrics", RequireActor(), s.submitRecord)
		v1.GET("/metrics", s.listRecords)
		v1.GET("/metrics/summary", s.monthlySummary)
		v1.GET("/metrics/:id", s.getRecord)
		v1.PUT("/metrics/:id", RequireActor(), s.updateRecord)

		v1.GET("/audit-entries", s.listAuditEntries)
	}

	return engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Module starts the HTTP server on the fx lifecycle with graceful shutdown.
var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              ":" + s.cfg.HTTPPort,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
