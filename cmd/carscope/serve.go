package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/carscope/carscope/internal/api"
	"github.com/carscope/carscope/pkg/scoring"
)

func newServeCmd() *cobra.Command {
	var (
		port         string
		templatePath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stateless scoring API locally",
		Long:  `Starts a local HTTP server exposing /api/v1/score and /api/v1/templates/default. No database is needed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, templatePath)
		},
	}

	cmd.Flags().StringVar(&port, "port", "7700", "Port to serve on")
	cmd.Flags().StringVar(&templatePath, "template", "", "Path to a checklist template (default: config or built-in)")

	return cmd
}

func runServe(ctx context.Context, port, templatePath string) error {
	tmpl, err := loadTemplate(firstNonEmpty(templatePath, loadConfig(".").Template.Path))
	if err != nil {
		return err
	}

	h := api.NewHandler(nil, nil, scoring.NewEngine(), tmpl, nil)
	mux := http.NewServeMux()
	h.RegisterScoringRoutes(mux)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           api.CORS(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "Serving scoring API on http://localhost:%s\n", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
