package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"budgethero/internal/amqp"
	"budgethero/internal/cli"
	"budgethero/internal/config"
	apphttp "budgethero/internal/http"
	"budgethero/internal/log"
	"budgethero/internal/services"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	host string
	port string
	db   string
}

func newRootCommand() *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "budgethero",
		Short: "Budget, transactions and wishlist API",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), f)
		},
	}

	rootCmd.PersistentFlags().StringVar(&f.host, "host", "", "listen host (overrides HOST)")
	rootCmd.PersistentFlags().StringVar(&f.port, "port", "", "listen port (overrides PORT)")
	rootCmd.PersistentFlags().StringVar(&f.db, "db", "", "SQLite file (overrides SQLITE_DB_PATH)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply migrations, create the default budget and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migrate(cmd.Context(), f)
		},
	})

	return rootCmd
}

// setup loads configuration and the logger shared by both commands.
func setup(f flags) (*config.Config, *log.Logger, error) {
	cli.LoadEnvFile()

	cfg := config.Load()
	if f.host != "" {
		cfg.Host = f.host
	}
	if f.port != "" {
		cfg.Port = f.port
	}
	if f.db != "" {
		cfg.SQLiteDBPath = f.db
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := cli.SetupLogger(cfg.LogLevel, log.ComponentApp, os.Stdout)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openLedger opens SQLite, connects the optional event publisher and makes
// sure the budget exists.
func openLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*services.LedgerService, error) {
	repo, err := cli.OpenSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		return nil, err
	}

	var publisher services.SyncPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("connect amqp: %w", err)
		}
		publisher = client
		logger.Info("Transaction sync events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP_URL not set, transaction sync events disabled")
	}

	ledger := services.NewLedgerService(repo, publisher)

	amount, err := cfg.BudgetAmount()
	if err != nil {
		_ = ledger.Close()
		return nil, err
	}
	if err := ledger.Bootstrap(ctx, amount); err != nil {
		_ = ledger.Close()
		return nil, err
	}
	return ledger, nil
}

func migrate(ctx context.Context, f flags) error {
	cfg, logger, err := setup(f)
	if err != nil {
		return err
	}

	ledger, err := openLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Bootstrap failed", "error", err)
		return err
	}
	logger.Info("Database ready", "path", cfg.SQLiteDBPath)
	return ledger.Close()
}

func serve(ctx context.Context, f flags) error {
	cfg, logger, err := setup(f)
	if err != nil {
		return err
	}

	ledger, err := openLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger", "error", err, "path", cfg.SQLiteDBPath)
		return err
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			logger.Error("Failed to close ledger", "error", err)
		}
	}()

	srv := apphttp.NewServer(cfg.Addr(), ledger, apphttp.Options{
		AllowedOrigin:     cfg.CORSAllowedOrigin,
		RequestsPerMinute: cfg.RateLimitPerMinute,
		Logger:            logger,
	})

	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting budgethero server", "addr", cfg.Addr(), "db", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", "timeout", cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	start := time.Now()
	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		return err
	}
	logger.Info("Server stopped gracefully", "uptime", time.Since(start).Round(time.Second).String())
	return nil
}
