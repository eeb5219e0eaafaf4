package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adyen/ecommerce-e2e/internal/config"
	"github.com/adyen/ecommerce-e2e/internal/handlers"
	"github.com/adyen/ecommerce-e2e/internal/services"
)

// ServerDependencies holds all dependencies needed for the report server
type ServerDependencies struct {
	RunService    services.RunService
	ServerConfig  config.ServerConfig
	ArtifactDir   string
	ReportHandler http.Handler
	RunsHandler   http.Handler
	Logger        logrus.FieldLogger
}

// BuildServerDependencies wires the report handlers over runService
func BuildServerDependencies(runService services.RunService, serverConfig config.ServerConfig, artifactDir string, log logrus.FieldLogger) (ServerDependencies, error) {
	deps := ServerDependencies{
		RunService:   runService,
		ServerConfig: serverConfig,
		ArtifactDir:  artifactDir,
		RunsHandler:  handlers.NewRunsHandler(runService, log.WithField("handler", "runs")),
		Logger:       log,
	}

	reportHandler, err := handlers.NewReportHandler(runService, services.DefaultListLimit, log.WithField("handler", "report"))
	if err != nil {
		return deps, fmt.Errorf("failed to create report handler: %w", err)
	}
	deps.ReportHandler = reportHandler

	return deps, nil
}

// RunServe starts the report server and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.logger())
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	log := deps.logger()

	// Set up routes
	mux := http.NewServeMux()
	mux.Handle("/", deps.ReportHandler)
	mux.Handle("/api/runs", deps.RunsHandler)
	mux.Handle("/api/runs/", deps.RunsHandler)
	if deps.ArtifactDir != "" {
		mux.Handle("/artifacts/", http.StripPrefix("/artifacts/", http.FileServer(http.Dir(deps.ArtifactDir))))
	}

	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.WithField("addr", listener.Addr().String()).Info("report server listening")
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server error")
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, log logrus.FieldLogger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, log)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}

	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	log.WithField("signal", sig.String()).Info("shutting down report server")

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not propagate listener close errors, so the
		// nested failure is not expected in practice
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info("report server stopped")
	return nil
}

func (d ServerDependencies) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}
