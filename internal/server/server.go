package server

import (
	"context"
	"net/http"
	"time"

	"github.com/aurafarming/mailportal/internal/config"
	"github.com/aurafarming/mailportal/internal/directory"
	directorydomain "github.com/aurafarming/mailportal/internal/directory/domain"
	"github.com/aurafarming/mailportal/internal/mailbox"
	"github.com/aurafarming/mailportal/internal/observability"
	obsmiddleware "github.com/aurafarming/mailportal/internal/observability/logger"
	obsmetrics "github.com/aurafarming/mailportal/internal/observability/metrics"
	obstracing "github.com/aurafarming/mailportal/internal/observability/tracing"
	"github.com/aurafarming/mailportal/internal/ratelimit"
	"github.com/aurafarming/mailportal/internal/registration"
	registrationdomain "github.com/aurafarming/mailportal/internal/registration/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	directory.Module,
	mailbox.Module,
	registration.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	directorySvc    directorydomain.Service
	registrationSvc registrationdomain.Service
	limiter         *ratelimit.PortalLimiter
	obsMetrics      *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	DirectorySvc    directorydomain.Service
	RegistrationSvc registrationdomain.Service
	Limiter         *ratelimit.PortalLimiter `optional:"true"`
	ObsMetrics      *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		directorySvc:    p.DirectorySvc,
		registrationSvc: p.RegistrationSvc,
		limiter:         p.Limiter,
		obsMetrics:      p.ObsMetrics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.GET("/health", s.Health)
	r.GET("/stats", s.Stats)
	r.POST("/check-username", s.rateLimitCheckUsername(), s.CheckUsername)
	r.POST("/register", s.rateLimitRegister(), s.Register)
}
