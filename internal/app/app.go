package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/handlers"
	"github.com/ternarybob/doceo/internal/interfaces"
	"github.com/ternarybob/doceo/internal/services/analyzer"
	"github.com/ternarybob/doceo/internal/services/extractor"
	"github.com/ternarybob/doceo/internal/services/llm"
	"github.com/ternarybob/doceo/internal/services/qa"
	"github.com/ternarybob/doceo/internal/services/testgen"
	"github.com/ternarybob/doceo/internal/services/views"
	"github.com/ternarybob/doceo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMService       interfaces.LLMService
	EmbeddingService interfaces.EmbeddingService
	ExtractorService *extractor.Service
	AnalyzerService  *analyzer.Service
	Janitor          *analyzer.Janitor
	ViewsService     *views.Service
	QAService        *qa.Service
	TestGenService   *testgen.Service

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	ContentHandler  *handlers.ContentHandler
	AnalysisHandler *handlers.AnalysisHandler
	ViewsHandler    *handlers.ViewsHandler
	QAHandler       *handlers.QAHandler
	TestGenHandler  *handlers.TestGenHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if cfg.Scheduler.Enabled {
		if err := app.Janitor.Start(cfg.Scheduler.SweepSchedule); err != nil {
			return nil, fmt.Errorf("failed to start stale-run janitor: %w", err)
		}
	}

	logger.Info().
		Str("provider", string(cfg.LLM.DefaultProvider)).
		Str("storage_path", cfg.Storage.Badger.Path).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initStorage() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

func (a *App) initServices() error {
	llmSvc, embedder, err := llm.NewServices(a.Config, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM services: %w", err)
	}
	a.LLMService = llmSvc
	a.EmbeddingService = embedder

	a.ExtractorService = extractor.NewService(&a.Config.Extractor, a.Logger)

	a.AnalyzerService = analyzer.NewService(
		a.StorageManager,
		a.LLMService,
		a.EmbeddingService,
		a.ExtractorService,
		&a.Config.Analyzer,
		a.Logger,
	)

	a.Janitor = analyzer.NewJanitor(a.StorageManager, a.Config.RunDeadlineDuration(), a.Logger)

	a.ViewsService = views.NewService(a.StorageManager, a.Logger)
	a.QAService = qa.NewService(a.StorageManager, a.LLMService, a.ViewsService, a.Logger)
	a.TestGenService = testgen.NewService(a.LLMService, a.Logger)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.StorageManager, a.LLMService, a.Logger)
	a.ContentHandler = handlers.NewContentHandler(a.StorageManager, a.Logger)
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.AnalyzerService, a.Logger)
	a.ViewsHandler = handlers.NewViewsHandler(a.ViewsService, a.Logger)
	a.QAHandler = handlers.NewQAHandler(a.QAService, a.Logger)
	a.TestGenHandler = handlers.NewTestGenHandler(a.TestGenService, a.Logger)
}

// Close shuts down all components in reverse dependency order. In-flight
// analysis runs are allowed to finish before storage closes.
func (a *App) Close() error {
	if a.Janitor != nil {
		a.Janitor.Stop()
	}

	if a.AnalyzerService != nil {
		a.AnalyzerService.Wait()
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
