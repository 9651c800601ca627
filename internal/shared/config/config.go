package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string

	GoogleAPIKey string
	GeminiModel  string

	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string

	LLMDefaultProvider string
	LLMTimeout         time.Duration
	OCREnabled         bool

	LLMRatePerMinute int
	LLMRateBurst     int

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatabaseURL string
}

var defaults = map[string]any{
	"PORT":                 "8080",
	"ENV":                  "dev",
	"CORS_ALLOW_ORIGINS":   "http://localhost:5173",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"GEMINI_MODEL":         "gemini-2.0-flash",
	"OPENROUTER_BASE_URL":  "https://openrouter.ai/api/v1",
	"OPENROUTER_MODEL":     "meta-llama/llama-3.3-70b-instruct:free",
	"LLM_DEFAULT_PROVIDER": "gemini",
	"LLM_TIMEOUT_SECONDS":  120,
	"OCR_ENABLED":          true,
	"LLM_RATE_PER_MINUTE":  10,
	"LLM_RATE_BURST":       3,
	"OBJECT_STORE":         "local",
	"LOCAL_STORE_DIR":      "./data",
}

// Load reads configuration from the environment, after a best-effort load of local .env files.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return v
}

func fromViper(v *viper.Viper) Config {
	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is empty in production; analyses are kept in memory")
	}

	timeoutSeconds := v.GetInt("LLM_TIMEOUT_SECONDS")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 120
	}

	return Config{
		Port:               v.GetString("PORT"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		LogFormat:          strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT"))),
		GoogleAPIKey:       strings.TrimSpace(v.GetString("GOOGLE_API_KEY")),
		GeminiModel:        v.GetString("GEMINI_MODEL"),
		OpenRouterAPIKey:   strings.TrimSpace(v.GetString("OPENROUTER_API_KEY")),
		OpenRouterBaseURL:  strings.TrimSpace(v.GetString("OPENROUTER_BASE_URL")),
		OpenRouterModel:    v.GetString("OPENROUTER_MODEL"),
		LLMDefaultProvider: normalizeProvider(v.GetString("LLM_DEFAULT_PROVIDER")),
		LLMTimeout:         time.Duration(timeoutSeconds) * time.Second,
		OCREnabled:         v.GetBool("OCR_ENABLED"),
		LLMRatePerMinute:   v.GetInt("LLM_RATE_PER_MINUTE"),
		LLMRateBurst:       v.GetInt("LLM_RATE_BURST"),
		ObjectStoreType:    normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:      v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:          v.GetString("AWS_REGION"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		SSEKMSKeyID:        v.GetString("SSE_KMS_KEY_ID"),
		DatabaseURL:        dbURL,
	}
}

func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		// Existing environment variables win over file values.
		_ = godotenv.Load(p)
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openrouter", "openai", "compatible":
		return "openrouter"
	default:
		return "gemini"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
