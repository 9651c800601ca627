package main

import (
	"context"
	"os"

	"github.com/Nileshsri2022/mera-resume-analyzer/internal/bootstrap"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/config"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/server"
	"github.com/Nileshsri2022/mera-resume-analyzer/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	telemetry.Configure(cfg.LogLevel, cfg.LogFormat)
	defer telemetry.Sync()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"err": err})
		os.Exit(1)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("server.starting", map[string]any{"addr": addr, "env": cfg.Env})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("server.failed", map[string]any{"err": err})
		os.Exit(1)
	}
}
