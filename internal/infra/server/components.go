package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	versionController "github.com/lloydmeta/esversions/internal/api/controllers/version"
	"github.com/lloydmeta/esversions/internal/api/models/common"
	"github.com/lloydmeta/esversions/internal/config"
	"github.com/lloydmeta/esversions/internal/domain/version"
	"github.com/lloydmeta/esversions/internal/infra/apm/tracing"
	cronVersion "github.com/lloydmeta/esversions/internal/infra/cron/version"
	"github.com/lloydmeta/esversions/internal/infra/server/binding/validation"
	"github.com/lloydmeta/esversions/internal/infra/server/routing"
	"github.com/lloydmeta/esversions/internal/infra/server/routing/versions"
)

// Components holds everything the server needs to run
type Components struct {
	Config    *config.App
	Clock     *version.Clock
	Registry  *version.Swappable
	Refresher version.Refresher
	Engine    *gin.Engine
}

// NewComponents wires together the registry, clock, refresher and HTTP routes from config
func NewComponents(appConfig *config.App) (*Components, error) {
	source := clockwork.NewRealClock()
	registry, err := NewRegistry(appConfig.Registry, source)
	if err != nil {
		return nil, err
	}
	clock, err := NewClock(appConfig.Registry, source)
	if err != nil {
		return nil, err
	}
	tracer := tracing.NewTracer()

	// a fixed year means a fixed table
	var refresher version.Refresher
	if appConfig.Registry.Year == nil {
		refresher = cronVersion.NewRefresher(registry, appConfig.Registry.Horizon, appConfig.Registry.RefreshSchedule, source, tracer)
	}

	validation.SetUpValidators()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(
		gin.Recovery(),
		routing.RequestId(),
		logger.SetLogger(logger.Config{Logger: &log.Logger, UTC: true}),
		gzip.Gzip(gzip.DefaultCompression),
		tracer.GinMiddleware(engine),
	)
	engine.NoRoute(routing.NoRoute)
	engine.NoMethod(routing.NoMethod)

	topLevelGroup := routing.NewTopLevelRoutesGroup(appConfig.Auth, engine)
	versionsHandler := versions.RoutesHandler{Controller: versionController.New(registry, clock)}
	versionsHandler.RegisterRoutes(topLevelGroup)

	return &Components{
		Config:    appConfig,
		Clock:     clock,
		Registry:  registry,
		Refresher: refresher,
		Engine:    engine,
	}, nil
}

// NewRegistry generates the version table as configured. The year defaults to the source's
// current year.
func NewRegistry(registryConfig config.Registry, source clockwork.Clock) (*version.Swappable, error) {
	opts := []version.Option{version.WithClock(source), version.WithHorizon(registryConfig.Horizon)}
	if registryConfig.Year != nil {
		opts = append(opts, version.WithYear(*registryConfig.Year))
	}
	registry, err := version.New(opts...)
	if err != nil {
		return nil, err
	}
	if log.Info().Enabled() {
		all := registry.All()
		log.Info().
			Uint("horizon", registryConfig.Horizon).
			Str("newest", string(all[len(all)-1].ID)).
			Int("versions", len(all)).
			Msg("Generated ECMAScript version table")
	}
	return version.NewSwappable(registry), nil
}

// NewClock returns a reference Clock following source, pinned if so configured
func NewClock(registryConfig config.Registry, source clockwork.Clock) (*version.Clock, error) {
	clock := version.NewClock(source)
	if registryConfig.Clock != nil {
		pinnedAt, err := common.ParseDate(*registryConfig.Clock)
		if err != nil {
			return nil, err
		}
		clock.Set(pinnedAt)
		log.Info().Time("at", pinnedAt).Msg("Pinned reference clock")
	}
	return clock, nil
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully
func (c *Components) Run() {
	if c.Refresher != nil {
		if err := c.Refresher.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start ECMAScript version table refresher")
		}
	}

	srv := &http.Server{
		Addr:    c.Config.BindAddress,
		Handler: c.Engine,
	}

	go func() {
		log.Info().Str("address", c.Config.BindAddress).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if c.Refresher != nil {
		c.Refresher.Stop()
	}
	log.Info().Msg("Server exited")
}

func (c *Components) shutdownTimeout() time.Duration {
	if c.Config.ShutdownTimeout > 0 {
		return c.Config.ShutdownTimeout
	}
	return 5 * time.Second
}
