package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/config"
	"github.com/jwalitptl/hospital-api/internal/handler"
	hospitalHandler "github.com/jwalitptl/hospital-api/internal/handler/hospital"
	promHandler "github.com/jwalitptl/hospital-api/internal/handler/prometheus"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/router"
	hospitalService "github.com/jwalitptl/hospital-api/internal/service/hospital"
	"github.com/jwalitptl/hospital-api/internal/session"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logger.NewLogger(&logger.Config{
		Level:   logger.ParseLevel(cfg.Log.Level),
		Console: cfg.Log.Console,
	}).SetGlobal()

	gin.SetMode(gin.ReleaseMode)
	srv := newServer(cfg, prometheus.NewRegistry())

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("hospital", cfg.Hospital.Name).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

func newServer(cfg *config.Config, reg *prometheus.Registry) *http.Server {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(cfg.Metrics.Namespace, reg)

	sessions := session.NewStore(session.Config{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		HospitalName:    cfg.Hospital.Name,
	}, appMetrics)

	hospitalSvc := hospitalService.NewService(appMetrics)

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = reg
	}
	h := handler.NewHandler(gatherer)
	hospitalH := hospitalHandler.NewHandler(hospitalSvc, sessions)

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins

	r := router.NewRouter(
		h,
		hospitalH,
		sessions,
		promHandler.New(cfg.Metrics.Namespace, reg),
		router.RouterConfig{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst:        cfg.RateLimit.Burst,
			MaxBodyBytes:     cfg.Server.MaxBodyBytes,
			CORSConfig:       corsConfig,
			SecurityConfig:   middleware.DefaultSecurityConfig(),
			SessionConfig: middleware.SessionConfig{
				CookieName: cfg.Session.CookieName,
				MaxAge:     int(cfg.Session.TTL.Seconds()),
				Secure:     cfg.Session.SecureCookie,
			},
			ValidationConfig: middleware.DefaultValidationConfig(),
		},
	)
	r.Setup()

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
