package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/extract"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/llm/gemini"
	openai "github.com/Nileshsri2022/mera-resume-analyzer/internal/llm/openai"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/report"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/services/health"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/config"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/db"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object"
	localstore "github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object/local"
	s3store "github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/storage/object/s3"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/tailor"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	LLM             llm.Resolver
	Extractor       *extract.Extractor
	AnalysesRepo    analyses.Repo
	AnalysesService *analyses.Service
	TailorService   *tailor.Service
	ExtractHandler  *extract.Handler
	AnalysisHandler *analyses.Handler
	TailorHandler   *tailor.Handler
}

// Build prepares shared dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	app, err := BuildCore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	if app.DB != nil {
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}
	app.AnalysesService = &analyses.Service{
		Repo:    app.AnalysesRepo,
		LLM:     app.LLM,
		Timeout: cfg.LLMTimeout,
	}
	app.TailorService = &tailor.Service{LLM: app.LLM, Timeout: cfg.LLMTimeout}

	app.ExtractHandler = extract.NewHandler(app.Extractor)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService, app.Extractor, report.Renderer{}, app.Store)
	app.TailorHandler = tailor.NewHandler(app.TailorService, app.Store)
	if app.AnalysisHandler == nil || app.TailorHandler == nil {
		return nil, errors.New("failed to initialize handlers")
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Health:          health.NewService(app.DB, app.LLM.Gemini != nil, app.LLM.Compatible != nil, cfg.ObjectStoreType),
		ExtractHandler:  app.ExtractHandler,
		AnalysisHandler: app.AnalysisHandler,
		TailorHandler:   app.TailorHandler,
	})
	return app, nil
}

// BuildCore prepares the LLM backends and the extractor only. The CLI uses it
// directly since it needs neither storage nor HTTP.
func BuildCore(ctx context.Context, cfg config.Config) (*App, error) {
	resolver, geminiClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var ocr extract.OCR
	if cfg.OCREnabled && geminiClient != nil {
		ocr = geminiClient
	}

	return &App{
		Config:    cfg,
		LLM:       resolver,
		Extractor: extract.New(ocr),
	}, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Resolver, *gemini.Client, error) {
	resolver := llm.Resolver{
		DefaultProvider: cfg.LLMDefaultProvider,
		DefaultModel:    cfg.OpenRouterModel,
	}

	var geminiClient *gemini.Client
	if cfg.GoogleAPIKey != "" {
		client, err := gemini.New(ctx, cfg.GoogleAPIKey, cfg.GeminiModel)
		if err != nil {
			return llm.Resolver{}, nil, err
		}
		geminiClient = client
		resolver.Gemini = client
	} else {
		telemetry.Warn("llm.gemini_disabled", map[string]any{"reason": "GOOGLE_API_KEY empty"})
	}

	if cfg.OpenRouterAPIKey != "" {
		baseURL, key, timeout := cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.LLMTimeout
		resolver.Compatible = func(model string) (llm.Client, error) {
			client, err := openai.NewClient(baseURL, key, model, timeout)
			if err != nil {
				return nil, err
			}
			return client, nil
		}
	}
	return resolver, geminiClient, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.memory_repo", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repo", map[string]any{"reason": "database connect failed", "err": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
