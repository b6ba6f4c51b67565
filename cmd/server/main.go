/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the rental booking server. Handles configuration,
  dependency injection, the cleanup scheduler, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags, load configuration (.env + YAML + env)
  2. Initialize the store (jsonfile or sqlite)
  3. Build the booking workflow, catalog service, and mailer
  4. Configure the HTTP router
  5. Start the cleanup scheduler (if enabled)
  6. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Path to a YAML config file (optional)
  -port    HTTP server port override
  -data    Data directory override (jsonfile driver)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler, close the store
  4. Exit

EXAMPLES:
  # Defaults: jsonfile store under ./data, port 3000
  ./server

  # Explicit config
  ./server -config=./config.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration layering
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/rental-engine/api"
	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/config"
	"github.com/warp/rental-engine/jobs"
	"github.com/warp/rental-engine/logger"
	"github.com/warp/rental-engine/mailer"
	"github.com/warp/rental-engine/scheduler"
	"github.com/warp/rental-engine/store"
	"github.com/warp/rental-engine/store/jsonfile"
	"github.com/warp/rental-engine/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "path to YAML config file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dataDir != "" {
		cfg.Storage.DataDir = *dataDir
	}

	log := logger.New(cfg.Log.Level)
	defer log.Sync()

	// Initialize store
	var st store.Store
	switch cfg.Storage.Driver {
	case "sqlite":
		st, err = sqlite.New(cfg.Storage.SQLitePath)
	default:
		st, err = jsonfile.New(cfg.Storage.DataDir, log)
	}
	if err != nil {
		log.Fatal("failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	// Wire the domain
	mail := mailer.New(mailer.Config{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		User:       cfg.SMTP.User,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		AdminEmail: cfg.SMTP.AdminEmail,
	})

	var notifier booking.Notifier = mail
	if !mail.Enabled() {
		log.Warn("no SMTP host configured, email notifications disabled")
		notifier = booking.NopNotifier{}
	}

	workflow := &booking.Workflow{
		Requests: st,
		Ledger:   st,
		Notifier: notifier,
		Log:      log,
	}
	articles := &catalog.Service{Store: st}

	handler := &api.Handler{
		Workflow: workflow,
		Articles: articles,
		Ledger:   st,
		Mailer:   mail,
		Log:      log,
	}
	router := api.NewRouter(handler, cfg.Server.StaticDir)

	// Scheduled cleanup
	if cfg.Cleanup.Enabled {
		runner := &jobs.Runner{Workflow: workflow, Log: log}
		sched, err := scheduler.New(runner, cfg.Cleanup.Schedule, log)
		if err != nil {
			log.Fatal("failed to schedule cleanup job", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("store", cfg.Storage.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
