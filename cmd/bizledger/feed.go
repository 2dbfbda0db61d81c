package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bizledger/internal/cli"
	applog "bizledger/internal/log"
	"bizledger/internal/worker"
)

func feedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Work with the AMQP change feed",
		Long: `Every mutating command publishes its store change to AMQP_EXCHANGE when
AMQP_URL is set. "feed consume" reads those changes back and re-exports the
affected reports.`,
	}
	cmd.AddCommand(feedConsumeCmd())
	return cmd
}

func feedConsumeCmd() *cobra.Command {
	var (
		timeout     time.Duration
		skipStartup bool
	)
	cmd := &cobra.Command{
		Use:   "consume",
		Short: "Re-export reports for every change received from the broker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !app.cfg.AMQPEnabled() {
				return errors.New("AMQP_URL is not set")
			}
			logger := app.logger.WithComponent(applog.ComponentAMQP)

			client := app.amqp
			if client == nil {
				var err error
				if client, err = newAMQPClient(); err != nil {
					return fmt.Errorf("failed to connect to broker: %w", err)
				}
				defer client.Close()
			}

			exporter, err := newExporter(cmd.Context())
			if err != nil {
				return err
			}
			syncer := worker.NewSyncWorker(newExportProcessor(exporter), app.logger)
			if !skipStartup {
				if err := syncer.StartupSyncCheck(cmd.Context()); err != nil {
					logger.Warn("Startup sync failed", applog.NewFields().WithError(err).ToSlice()...)
				}
			}

			ctx, done := cli.GracefulShutdown(cmd.Context(), logger, timeout, nil)
			logger.Info("Consuming changes", "queue", app.cfg.AMQPQueue)

			err = client.ConsumeChanges(ctx, syncer.HandleChangeMessage)
			stats := syncer.Stats()
			logger.Info("Stopped consuming changes", "exported", stats.Exported, "skipped", stats.Skipped, "failed", stats.Failed)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			cli.WaitForShutdown(ctx, done)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipStartup, "skip-startup-sync", false, "do not export everything before consuming")
	cmd.Flags().DurationVar(&timeout, "shutdown-timeout", 30*time.Second, "time allowed for in-flight exports on shutdown")
	return cmd
}
