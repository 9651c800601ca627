package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service reports which optional backends are wired.
type Service struct {
	DB           *sql.DB
	GeminiReady  bool
	CompatReady  bool
	StoreBackend string
}

// NewService constructs a new health service.
func NewService(db *sql.DB, geminiReady, compatReady bool, storeBackend string) *Service {
	return &Service{DB: db, GeminiReady: geminiReady, CompatReady: compatReady, StoreBackend: storeBackend}
}

// Status returns the health payload. ok is false only when a configured database does not answer.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{
		"ok": true,
		"llm": map[string]bool{
			"gemini":     s.GeminiReady,
			"openrouter": s.CompatReady,
		},
		"store":    s.StoreBackend,
		"database": "memory",
	}
	if s.DB == nil {
		return out
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		out["ok"] = false
		out["database"] = "unreachable"
		return out
	}
	out["database"] = "postgres"
	return out
}
