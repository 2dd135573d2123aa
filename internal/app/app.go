// Package app wires the configured repository, store and HTTP router together.
package app

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/ichikawacraice/dt-money/internal/application/service"
	"github.com/ichikawacraice/dt-money/internal/domain/repository"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/api"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/config"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/db"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/handler"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
)

// App holds the long-lived components of a running process
type App struct {
	Config  *config.Config
	Logger  logger.Logger
	Service *service.TransactionService

	closers []io.Closer
}

// New opens the configured store backend and builds the transaction service
func New(cfg *config.Config, log logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	a := &App{Config: cfg, Logger: log}

	repo, err := a.openRepository()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Service = service.NewTransactionService(repo, log)
	return a, nil
}

func (a *App) openRepository() (repository.TransactionRepository, error) {
	cfg := a.Config

	switch cfg.Store {
	case config.StoreSQLite:
		sqlDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, sqlDB)
		a.Logger.Info("Using SQLite store", map[string]interface{}{"path": cfg.SQLitePath})
		return db.NewSQLiteTransactionRepository(sqlDB), nil

	case config.StoreRemote:
		client := api.NewTransactionsAPIClient(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout}, a.Logger)
		a.Logger.Info("Using remote transactions API", map[string]interface{}{"url": cfg.APIURL})
		return client, nil

	default:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		badgerDB, err := db.OpenBadger(cfg.DataDir, false)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, badgerDB)
		a.Logger.Info("Using Badger store", map[string]interface{}{"dir": cfg.DataDir})
		return db.NewBadgerTransactionRepository(badgerDB), nil
	}
}

// Router returns the HTTP router serving both forms
func (a *App) Router() *mux.Router {
	return handler.NewRouter(handler.NewTransactionHandler(a.Service, a.Logger), a.Logger)
}

// Close releases the store backend
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.Logger.Warn("Error closing store", map[string]interface{}{"error": err.Error()})
		}
	}
	a.closers = nil
}
