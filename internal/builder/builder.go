package builder

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/validalex/draft-backend/internal/api"
	draftapi "github.com/validalex/draft-backend/internal/api/draft"
	exportapi "github.com/validalex/draft-backend/internal/api/export"
	"github.com/validalex/draft-backend/internal/config"
	"github.com/validalex/draft-backend/internal/entity"
	"github.com/validalex/draft-backend/internal/integration/callback"
	"github.com/validalex/draft-backend/internal/integration/llm"
	"github.com/validalex/draft-backend/internal/pkg/formatter"
	"github.com/validalex/draft-backend/internal/pkg/guidance"
	"github.com/validalex/draft-backend/internal/pkg/parser"
	"github.com/validalex/draft-backend/internal/pkg/prompt"
	"github.com/validalex/draft-backend/internal/pkg/ratelimit"
	"github.com/validalex/draft-backend/internal/pkg/validator"
	"github.com/validalex/draft-backend/internal/repository"
	"github.com/validalex/draft-backend/internal/usecase/draft"
	"github.com/validalex/draft-backend/internal/usecase/export"
	"github.com/validalex/draft-backend/templates"
)

func Build(environment string) (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig(environment)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
		zap.String("llm_provider", cfg.LLMCfg.Provider),
		zap.String("store_driver", cfg.StoreCfg.Driver),
	)

	store, err := setupJobStore(ctx, cfg.StoreCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup job store: %w", err)
	}
	fileRepo := repository.NewFileMemory(cfg.ExportCfg.FileTTL)
	logger.Info("Repositories initialized")

	if err := formatter.ConfigureLicense(cfg.ExportCfg.UnidocKey); err != nil {
		// DOCX export fails per request until a valid key is set.
		logger.Warn("unioffice license not applied", zap.Error(err))
	}

	loader := guidance.NewLoader(TemplateFS(cfg.TemplatesCfg), cfg.TemplatesCfg.CacheTTL)
	if _, err := loader.Load(cfg.TemplatesCfg.DefaultVersion); err != nil {
		store.Close()
		return nil, fmt.Errorf("load default template %q: %w", cfg.TemplatesCfg.DefaultVersion, err)
	}

	model := setupModelClient(cfg.LLMCfg, logger)
	callbackConnector := callback.NewConnector(cfg.CallbackCfg, logger)
	logger.Info("Connectors initialized")

	draftUC := draft.NewUsecase(
		validator.NewPetitionValidator(validator.DefaultSchema()),
		prompt.NewBuilder(loader, prompt.Options{
			MaxFieldChars:   cfg.TemplatesCfg.MaxFieldChars,
			TemplateVersion: cfg.TemplatesCfg.DefaultVersion,
			PromptVersion:   cfg.TemplatesCfg.PromptVersion,
		}),
		model,
		parser.NewParser(loader, cfg.TemplatesCfg.DefaultVersion),
		store.repo,
		callbackConnector,
		logger,
	)

	exportUC := export.NewUsecase(
		formatter.NewFactory(formatter.Options{PDFFontPath: cfg.ExportCfg.FontPath}),
		fileRepo,
		export.Options{
			DefaultDelivery: entity.ExportDelivery(cfg.ExportCfg.Delivery),
			PublicBaseURL:   cfg.ExportCfg.PublicBaseURL,
		},
		logger,
	)
	logger.Info("Use cases initialized")

	router := api.SetupRouter(
		draftapi.NewHandler(draftUC),
		exportapi.NewHandler(exportUC),
		ratelimit.NewLimiter(),
		cfg,
		logger,
	)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		// Synchronous drafts wait on the model for up to RequestTimeout.
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		store:           store,
		jobs:            draftUC,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

// TemplateFS returns the configured templates directory, or the templates
// compiled into the binary.
func TemplateFS(cfg config.TemplatesConfig) fs.FS {
	if cfg.Dir != "" {
		return os.DirFS(cfg.Dir)
	}
	return templates.FS
}

func setupModelClient(cfg config.LLMConfig, logger *zap.Logger) draft.ModelClient {
	switch cfg.Provider {
	case config.ProviderMock:
		logger.Info("Using mock model client", zap.Duration("delay", cfg.MockDelay))
		return llm.NewMockConnector(logger, cfg.MockDelay)
	case config.ProviderGateway:
		logger.Info("Using gateway model client", zap.String("url", cfg.GatewayCfg.Url))
		return llm.NewGatewayConnector(cfg, logger)
	default:
		logger.Info("Using OpenAI model client", zap.String("model", cfg.Model))
		return llm.NewOpenAIConnector(cfg, logger)
	}
}
