// Command carscoped is the Carscope platform service.
// It serves the inspection API, public report links and a health check.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carscope/carscope/internal/api"
	"github.com/carscope/carscope/internal/company"
	"github.com/carscope/carscope/internal/inspection"
	"github.com/carscope/carscope/internal/platform"
	"github.com/carscope/carscope/pkg/checklist"
	"github.com/carscope/carscope/pkg/config"
	"github.com/carscope/carscope/pkg/scoring"
)

func loadConfig() (*config.Config, error) {
	path := os.Getenv("CARSCOPE_CONFIG")
	if path == "" {
		wd, _ := os.Getwd()
		path = config.FindConfigFile(wd)
	}
	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("carscoped exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := platform.OpenDB(ctx, cfg.Server.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := platform.AutoMigrate(db); err != nil {
		return err
	}
	if v, dirty, err := platform.SchemaVersion(db); err == nil {
		logger.Info("database ready", "schema_version", v, "dirty", dirty)
	}

	storage, err := inspection.NewStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if c, ok := storage.(io.Closer); ok {
		defer c.Close()
	}

	var tmpl *checklist.Template
	if cfg.Template.Path != "" {
		if tmpl, err = checklist.LoadTemplate(cfg.Template.Path); err != nil {
			return err
		}
	}

	// Initialize services
	scorer := scoring.NewEngine()
	companySvc := company.NewService(db)
	inspectionSvc := inspection.NewService(db, storage, scorer, companySvc)
	handler := api.NewHandler(inspectionSvc, companySvc, scorer, tmpl, api.NewReportCache(cfg.Server.CacheSize))

	// Authenticated API and public report links share one mux but not one middleware stack.
	private := http.NewServeMux()
	handler.RegisterRoutes(private)
	public := http.NewServeMux()
	handler.RegisterPublicRoutes(public)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.APIKeyAuth(cfg.Server.APIKey)(private))
	mux.Handle("/r/", api.RateLimit(cfg.Server.ShareRateLimit, 10)(public))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.Recover(logger)(api.RequestLogger(logger)(api.CORS(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting carscoped", "port", cfg.Server.Port, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
