package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/analyses"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/extract"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/services/health"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/config"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/metrics"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server/middleware"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server/respond"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/tailor"
)

// RouterDeps are the handlers mounted under /api/v1.
type RouterDeps struct {
	Config          config.Config
	Health          *health.Service
	ExtractHandler  *extract.Handler
	AnalysisHandler *analyses.Handler
	TailorHandler   *tailor.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	// LLM-backed routes share one per-client budget.
	llmLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.RateLimitGroupLLM: middleware.PerMinute(cfg.LLMRatePerMinute, cfg.LLMRateBurst),
		},
		DefaultGroup: middleware.RateLimitGroupLLM,
	})
	var limiters []gin.HandlerFunc
	if cfg.LLMRatePerMinute > 0 {
		limiters = append(limiters, llmLimit)
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	if deps.ExtractHandler != nil {
		deps.ExtractHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api, limiters...)
	}
	if deps.TailorHandler != nil {
		deps.TailorHandler.RegisterRoutes(api, limiters...)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
