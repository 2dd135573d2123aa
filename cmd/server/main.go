package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ichikawacraice/dt-money/internal/app"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/config"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal("Failed to load config", map[string]interface{}{"error": err.Error()})
	}

	log := logger.NewJSONLogger(os.Stdout, cfg.Level())
	logger.SetDefaultLogger(log)

	log.Info("Starting dt-money transaction server", nil)

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", map[string]interface{}{"error": err.Error()})
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", map[string]interface{}{"addr": cfg.Addr, "store": cfg.Store})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
	}
}
