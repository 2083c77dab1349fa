// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "escp-service/docs"
	"escp-service/internal/config"
	"escp-service/internal/handler"
	"escp-service/internal/protocol"
	"escp-service/internal/repository"
	"escp-service/internal/routes"
	"escp-service/internal/service"
	"escp-service/internal/utils"
)

// Application represents the main application
type Application struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server
	router *routes.Router

	transports       []protocol.Transport
	jobRepo          repository.JobRepository
	eventBus         *handler.EventBus
	printService     *service.PrintService
	discoveryService *service.DiscoveryService
}

// @title ESC/P Print Service API
// @version 1.0.0
// @description Encodes ESC/P and ESC/P2 print jobs and delivers them to dot-matrix printers

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8085
// @BasePath /api/v1
func main() {
	app, err := NewApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, cfg.App.Name)
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	if err := app.initializeTransports(); err != nil {
		return nil, fmt.Errorf("failed to initialize transports: %w", err)
	}

	app.initializeServices()
	app.initializeServer()

	return app, nil
}

// initializeTransports creates the configured transports. Debug
// transports dump to stdout.
func (app *Application) initializeTransports() error {
	transports, err := protocol.NewTransports(app.config.Transports, os.Stdout, app.logger)
	if err != nil {
		return err
	}
	app.transports = transports

	if len(transports) == 0 {
		app.logger.Warn("No transports configured, jobs can be previewed but not printed")
	}

	app.logger.Info("Transports initialized successfully", zap.Int("transports", len(transports)))
	return nil
}

// initializeServices creates the job history, event bus and services
func (app *Application) initializeServices() {
	app.jobRepo = repository.NewJobRepository(app.config.Printer.JobHistory, app.logger)
	app.eventBus = handler.NewEventBus(app.logger)
	app.printService = service.NewPrintService(
		app.config.Printer,
		app.transports,
		app.jobRepo,
		app.eventBus,
		app.logger,
	)
	app.discoveryService = service.NewDiscoveryService(app.config.Discovery, app.logger)

	app.logger.Info("Services initialized successfully",
		zap.Int("printer_pins", app.config.Printer.Pins),
		zap.String("code_page", app.config.Printer.CodePage),
	)
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() {
	app.router = routes.NewRouter(app.config, app.logger, app.printService, app.discoveryService, app.eventBus)

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      app.router.SetupRouter(),
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized", zap.String("address", app.config.GetServerAddr()))
}

// startBackgroundServices starts background services
func (app *Application) startBackgroundServices() {
	go app.eventBus.Start()
	go app.openTransports()

	app.logger.Info("Background services started")
}

// openTransports connects each transport up front so the first job does
// not pay for device setup. Failures are retried when a job is sent.
func (app *Application) openTransports() {
	for _, t := range app.transports {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := t.Open(ctx); err != nil {
			app.logger.Warn("Transport not available yet",
				zap.String("transport", t.Name()),
				zap.Error(err),
			)
		}
		cancel()
	}
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, app.config.App.Name)
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	app.router.Close()
	app.eventBus.Stop()

	// waits for an in-flight job before closing
	if err := app.printService.Close(); err != nil {
		app.logger.Error("Transport close error", zap.Error(err))
	} else {
		app.logger.Info("Transports closed")
	}

	app.logger.Info("Application shutdown completed")

	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

// Start serves HTTP until a shutdown signal arrives
func (app *Application) Start() error {
	go func() {
		app.logger.Info("Starting HTTP server", zap.String("address", app.server.Addr))

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	app.startBackgroundServices()

	app.waitForShutdown()

	return nil
}
