// Package restserver serves the forecast sensor over HTTP: the ingest
// endpoints used by the data-fetch collaborator and the snapshot endpoints
// used by presentation collaborators.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/minutewx/nexthour/internal/coordinator"
	"github.com/minutewx/nexthour/internal/log"
	"github.com/minutewx/nexthour/internal/sensor"
	"github.com/minutewx/nexthour/pkg/config"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	restConfig  config.RESTData
	Server      http.Server
	coordinator *coordinator.Coordinator
	sensor      *sensor.Sensor
	logger      *zap.SugaredLogger
	handlers    *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTData, coord *coordinator.Coordinator, sens *sensor.Sensor, logger *zap.SugaredLogger) (*Controller, error) {
	ctrl := &Controller{
		ctx:         ctx,
		wg:          wg,
		restConfig:  rc,
		coordinator: coord,
		sensor:      sens,
		logger:      logger,
	}

	if ctrl.coordinator == nil || ctrl.sensor == nil {
		return nil, fmt.Errorf("REST server requires a coordinator and a sensor")
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if ctrl.restConfig.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		ctrl.restConfig.ListenAddr = "0.0.0.0"
	}

	if ctrl.restConfig.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		ctrl.restConfig.Port = 8080
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server = http.Server{
		Addr:         fmt.Sprintf("%s:%d", ctrl.restConfig.ListenAddr, ctrl.restConfig.Port),
		Handler:      ctrl.setupRouter(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return ctrl, nil
}

// StartController starts the HTTP server and arranges its shutdown when the
// controller context is cancelled.
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/v1/forecast", c.handlers.PutForecast).Methods(http.MethodPut)
	router.HandleFunc("/v1/forecast/failure", c.handlers.PostForecastFailure).Methods(http.MethodPost)
	router.HandleFunc("/v1/nexthour", c.handlers.GetNextHour).Methods(http.MethodGet)
	router.HandleFunc("/v1/health", c.handlers.GetHealth).Methods(http.MethodGet)
	router.HandleFunc("/v1/logs", c.handlers.GetLogs).Methods(http.MethodGet)

	return router
}
