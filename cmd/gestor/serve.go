package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gestor/internal/auth"
	"gestor/internal/blob"
	"gestor/internal/config"
	"gestor/internal/core"
	"gestor/internal/export"
	"gestor/internal/httpapi"
	"gestor/internal/infra/persistence/memory"
	"gestor/internal/infra/persistence/postgres"
	"gestor/internal/infra/persistence/sqlite"
	"gestor/internal/metrics"
	"gestor/pkg/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal API server",
	RunE:  runServe,
}

func openStore(ctx context.Context, cfg config.Config) (domain.Store, error) {
	switch cfg.Database.Driver {
	case "memory":
		return memory.NewStore(), nil
	case "sqlite", "":
		return sqlite.NewStore(cfg.Database.DSN)
	case "postgres":
		return postgres.NewStore(ctx, cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := core.NewService(store,
		core.WithTeam(cfg.TeamMembers),
		core.WithMetrics(metrics.NewRecorder(reg)),
	)

	authSvc, err := auth.NewService(store, auth.Config{
		Secret:     cfg.Auth.Secret,
		TokenTTL:   cfg.Auth.TokenTTL.Std(),
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	blobs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	api := httpapi.New(svc, authSvc, export.New(svc, blobs), logger)
	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.Router(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Listen), zap.String("db", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
