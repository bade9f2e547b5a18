// cmd/xmlgen-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/askillindva/XmlTemplateGenerator/internal/activitylog"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/config"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/database"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/logger"
	"github.com/askillindva/XmlTemplateGenerator/internal/common/observability"
	"github.com/askillindva/XmlTemplateGenerator/internal/generator"
	"github.com/askillindva/XmlTemplateGenerator/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapLog := logger.New("info", "console")
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting xml template generator",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// The templates directory is a contract, not a precondition: create it
	// when missing so the listing page just shows the empty state.
	if err := os.MkdirAll(cfg.Templates.Dir, 0o755); err != nil {
		zapLog.Fatal("failed to create templates directory", zap.Error(err))
	}

	dbClient, err := database.NewSQLite(cfg.Database.SQLite)
	if err != nil {
		zapLog.Fatal("failed to open activity log database", zap.Error(err))
	}
	defer dbClient.Close()

	ctx := context.Background()
	logStore := activitylog.NewStore(dbClient.GetDB(), log)
	if err := logStore.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("failed to ensure activity log schema", zap.Error(err))
	}

	templateStore := generator.NewStore(cfg.Templates, log)
	service := generator.NewService(templateStore, logStore, log)

	server, err := web.NewServer(cfg.Server, service, logStore, dbClient, obs, log)
	if err != nil {
		zapLog.Fatal("failed to build web server", zap.Error(err))
	}

	httpServer := server.NewHTTPServer()

	go func() {
		zapLog.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("stopped")
}
