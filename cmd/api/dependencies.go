package main

import (
	"fmt"
	"log/slog"
	"net/http"

	categoryhandler "github.com/bcakit/mutasi2xlsx/internal/domain/category/handler"

	"github.com/bcakit/mutasi2xlsx/internal/domain/category"
	statementhandler "github.com/bcakit/mutasi2xlsx/internal/domain/statement/handler"
	statementservice "github.com/bcakit/mutasi2xlsx/internal/domain/statement/service"
	"github.com/bcakit/mutasi2xlsx/pkg/config"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	CategoryRepo *category.Repository

	StatementService *statementservice.StatementService
	Sessions         *statementhandler.SessionStore

	StatementHandler *statementhandler.StatementHandler
	CategoryHandler  *categoryhandler.CategoryHandler
}

// InitDependencies initializes all application dependencies.
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	repo, err := category.NewRepository(cfg.Category.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init category store: %w", err)
	}
	deps.CategoryRepo = repo

	deps.StatementService = statementservice.NewStatementService(logger)
	deps.Sessions = statementhandler.NewSessionStore(cfg.Upload.SessionTTL)

	deps.StatementHandler = statementhandler.NewStatementHandler(
		deps.StatementService,
		deps.Sessions,
		deps.CategoryRepo,
		logger,
		cfg.Upload.PreviewRows,
		cfg.Upload.MaxBytes,
	)
	deps.CategoryHandler = categoryhandler.NewCategoryHandler(deps.CategoryRepo, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Routes builds the HTTP mux with every handler registered.
func (d *Dependencies) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	d.StatementHandler.Register(mux)
	d.CategoryHandler.Register(mux)
	return mux
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.CategoryRepo != nil {
		if err := d.CategoryRepo.Close(); err != nil {
			d.Logger.Error("failed to close category store", slog.Any("error", err))
		}
	}
}
