package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"budgethero/internal/amqp"
	"budgethero/internal/backend"
	"budgethero/internal/cli"
	"budgethero/internal/config"
	"budgethero/internal/log"
	"budgethero/internal/worker"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		dbPath string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "ledger-sync",
		Short: "Mirror new transactions into a Google Sheet",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), dbPath, dryRun)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file (overrides SQLITE_DB_PATH)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log rows instead of writing to Google Sheets")

	return cmd
}

func run(ctx context.Context, dbPath string, dryRun bool) error {
	cli.LoadEnvFile()

	cfg := config.Load()
	if dbPath != "" {
		cfg.SQLiteDBPath = dbPath
	}

	if dryRun {
		if cfg.AMQPURL == "" {
			return errors.New("configuration validation failed:\n- AMQP URL is required for the sync worker")
		}
	} else if err := cfg.ValidateSync(); err != nil {
		return err
	}

	logger, err := cli.SetupLogger(cfg.LogLevel, log.ComponentWorker, os.Stdout)
	if err != nil {
		return err
	}

	logger.Info("Starting ledger-sync", "dry_run", dryRun)

	repo, err := cli.OpenSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	backendCfg, err := backend.FromAppConfig(cfg, dryRun)
	if err != nil {
		return err
	}
	mirror, err := backend.NewFactory(logger.Logger).CreateWriter(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize mirror backend", "error", err, "backend", backendCfg.Type.String())
		return err
	}
	if mirror.Cleanup != nil {
		defer mirror.Cleanup()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		return err
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, mirror.Writer)

	ctx, stop := cli.SignalContext(ctx)
	defer stop()

	if err := consume(ctx, amqpClient, syncWorker.HandleSyncMessage); err != nil {
		logger.Error("Message consumption failed", "error", err)
		return err
	}
	logger.Info("ledger-sync stopped gracefully")
	return nil
}

type syncConsumer interface {
	ConsumeTransactionSync(ctx context.Context, handler func(context.Context, *amqp.TransactionSyncMessage) error) error
}

// consume blocks until a signal cancels ctx or the consumer fails.
// Cancellation is a clean stop.
func consume(ctx context.Context, c syncConsumer, handler func(context.Context, *amqp.TransactionSyncMessage) error) error {
	err := c.ConsumeTransactionSync(ctx, handler)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("consume transaction sync: %w", err)
	}
	return nil
}
