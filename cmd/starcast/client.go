package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/starcast-app/starcast/internal/backend"
	"github.com/starcast-app/starcast/internal/config"
	"github.com/starcast-app/starcast/internal/models"
	"github.com/starcast-app/starcast/internal/storage"
	"github.com/starcast-app/starcast/internal/workflow"
)

// env bundles the wired stack a command needs: config, the backend
// client with its terminal UI hooks, the settings store and the model
// manager resumed from it.
type env struct {
	cfg    config.Config
	client *backend.Client
	store  *storage.Store
	models *models.Manager
}

var newEnv = func() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	initLogging(cfg.Log.Level)

	client := backend.New(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutSeconds)*time.Second,
		backend.WithUI(termIndicator{}, termTarget{}),
	)

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	return &env{
		cfg:    cfg,
		client: client,
		store:  store,
		models: models.NewManager(client, store),
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
	}
}

func (e *env) coordinator(assumeYes bool) *workflow.Coordinator {
	return workflow.NewCoordinator(e.client, promptConfirmer{assumeYes: assumeYes}, e.cfg.Workflow.Concurrency)
}

func initLogging(level string) {
	logLevel := slog.LevelInfo
	if strings.EqualFold(level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}
