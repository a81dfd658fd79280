package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nest/internal/controllers"
	"nest/internal/providers"
	"nest/internal/repositories"
	"nest/internal/structures"
	"nest/internal/training"
	"nest/internal/training/interfaces"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the outer mux: infrastructure endpoints plus the
// instrumented API routes.
func NewHandler(router providers.RouterProviderInterface, healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) http.Handler {
	apiMux := providers.NewServeMux(router)
	instrumentedAPI := providers.MetricsMiddleware(metrics, providers.LoggingMiddleware(logger, apiMux))

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)
	return providers.RequestIDMiddleware(mux)
}

func NewApp(handler http.Handler, scheduler interfaces.SchedulerInterface, trainer training.ServiceInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	if conf.Database.Migrate {
		migrations, err := repositories.Migrations()
		if err != nil {
			return nil, err
		}
		if err := providers.RunMigrations(conf.Database.URL, migrations, logger); err != nil {
			return nil, err
		}
	}

	if err := scheduler.Restore(); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		scheduler.Stop()
		trainer.Close()
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	trainer.Close()
	if err := scheduler.Persist(); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
