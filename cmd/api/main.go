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

	flag "github.com/spf13/pflag"

	"pet-adoption-tracker/internal/adapters/storage/engine"
	"pet-adoption-tracker/internal/platform/config"
	"pet-adoption-tracker/internal/platform/dispatch"
	"pet-adoption-tracker/internal/platform/logger"
	"pet-adoption-tracker/internal/router"
)

func main() {
	configPath := flag.StringP("config", "c", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	port := flag.StringP("port", "p", "", "HTTP port (overrides config and PORT)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := engine.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer db.Close()

	r := router.NewRouter(router.Options{
		DB:         db,
		Dispatcher: dispatch.New(cfg.Dispatch.Workers),
		Logger:     log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down", nil)
	return srv.Shutdown(shutdownCtx)
}
