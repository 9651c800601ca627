package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/config"
)

func TestBuildWithoutCredentialsUsesMemoryAndLocalStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{Env: "dev", LocalStoreDir: t.TempDir(), OCREnabled: true}

	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil || app.LLM.Gemini != nil || app.LLM.Compatible != nil {
		t.Fatalf("expected no database or LLM backends, got %#v", app)
	}
	if app.Extractor.OCR != nil {
		t.Fatalf("OCR must stay off without a Gemini key")
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBuildRejectsS3WithoutBucket(t *testing.T) {
	_, err := Build(context.Background(), config.Config{Env: "dev", ObjectStoreType: "s3"})
	if err == nil {
		t.Fatalf("expected error for s3 store without bucket")
	}
}

func TestBuildCoreWiresOpenRouter(t *testing.T) {
	app, err := BuildCore(context.Background(), config.Config{
		OpenRouterAPIKey:  "key",
		OpenRouterBaseURL: "https://openrouter.ai/api/v1/",
		OpenRouterModel:   "meta-llama/llama-3.3-70b-instruct:free",
	})
	if err != nil {
		t.Fatalf("BuildCore: %v", err)
	}
	client, err := app.LLM.Resolve("meta-llama/llama-3.3-70b-instruct:free")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if client.Name() != "meta-llama/llama-3.3-70b-instruct:free" {
		t.Fatalf("unexpected model %q", client.Name())
	}
}
