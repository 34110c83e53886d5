package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"client-ledger/api"
	"client-ledger/app"
)

var (
	httpAddr      string
	flushSchedule string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the scheduled balance flush",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.HTTPAddr = httpAddr
		}
		if cmd.Flags().Changed("flush-schedule") {
			cfg.FlushSchedule = flushSchedule
		}
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "HTTP listen address (overrides LEDGER_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&flushSchedule, "flush-schedule", "", `Cron spec for storing balances, e.g. "@daily"; empty disables (overrides LEDGER_FLUSH_SCHEDULE)`)
}

func newRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	api.RegisterRoutes(router, ledgerService, logger.With(zap.String("component", "HTTPHandler")))
	return router
}

func serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Client ledger starting...", zap.String("data_dir", cfg.DataDir))

	var scheduler *app.FlushScheduler
	if cfg.FlushSchedule != "" {
		s, err := app.NewFlushScheduler(cfg.FlushSchedule, ledgerService, logger.With(zap.String("component", "FlushScheduler")))
		if err != nil {
			return err
		}
		scheduler = s
		scheduler.Start()
		logger.Info("Flush scheduler configured", zap.String("schedule", cfg.FlushSchedule), zap.Time("next", scheduler.Next()))
	} else {
		logger.Info("Scheduled flush disabled")
	}

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: newRouter(),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("address", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down application...")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			runErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("HTTP server gracefully shut down.")
	}
	if scheduler != nil {
		scheduler.Stop()
	}

	logger.Info("Application gracefully shut down.")
	return runErr
}
