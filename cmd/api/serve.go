package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/collabscope/core/cmd/api/middleware"
	"github.com/collabscope/core/internal/config"
	"github.com/collabscope/core/internal/handlers"
	"github.com/collabscope/core/internal/logging"
	"github.com/collabscope/core/internal/store"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		dataPath   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			if dataPath != "" {
				cfg.DatasetPath = dataPath
			}

			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&dataPath, "data", "", "dataset path (overrides config)")

	return cmd
}

func runServe(cfg *config.Config) error {
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st := store.New(cfg.DatasetPath, logger)
	if err := st.Load(); err != nil {
		// Startup proceeds with the empty graph; the renderer shows its
		// "no data" state until a reload succeeds.
		logger.Warn("starting without dataset", zap.Error(err))
	}

	if cfg.WatchDataset {
		go func() {
			if err := st.Watch(ctx); err != nil {
				logger.Warn("dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	live := handlers.NewLiveHandler(st, cfg, logger)
	go live.Run(ctx)

	mux := setupRouter(st, cfg, logger, live)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: middleware.Cors(cfg.CORSAllowedOrigin)(middleware.Observe(logger)(mux)),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown error", zap.Error(err))
		}
	}()

	logger.Info("server starting", zap.String("addr", cfg.ListenAddr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func setupRouter(st *store.Store, cfg *config.Config, logger *zap.Logger, live *handlers.LiveHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/graph", handlers.GraphHandler(st, cfg, logger))
	mux.HandleFunc("/graph/stats", handlers.StatsHandler(st, cfg))
	mux.Handle("/live", live)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
