package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/minutewx/nexthour/internal/controllers/restserver"
	"github.com/minutewx/nexthour/internal/coordinator"
	"github.com/minutewx/nexthour/internal/log"
	"github.com/minutewx/nexthour/internal/sensor"
	"github.com/minutewx/nexthour/internal/translate"
	"github.com/minutewx/nexthour/pkg/config"
	"go.uber.org/zap"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	language := cfg.Station.Language
	if language == "" {
		language = "en"
	}
	catalog := translate.New(language)

	// Coordinator distributes pushed payloads; the sensor derives the
	// summary, icon, and attributes from each one.
	coord := coordinator.New()
	sens := sensor.New(catalog, a.logger, cfg.Station.Latitude, cfg.Station.Longitude)
	sens.Run(ctx, &wg, coord.Subscribe())
	coord.Start(ctx, &wg)

	restController, err := restserver.NewController(ctx, &wg, cfg.REST, coord, sens, a.logger)
	if err != nil {
		return err
	}
	if err := restController.StartController(); err != nil {
		return err
	}

	log.Infof("Application started successfully for station %q", cfg.Station.Name)

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	// Wait for all workers to terminate
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
