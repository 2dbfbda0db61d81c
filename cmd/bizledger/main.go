package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"bizledger/internal/amqp"
	"bizledger/internal/cli"
	"bizledger/internal/config"
	"bizledger/internal/core"
	applog "bizledger/internal/log"
	"bizledger/internal/report"
	"bizledger/internal/services"
)

var version = "dev"

// appState is built once per invocation by the root pre-run hook.
type appState struct {
	cfg      *config.Config
	logger   *applog.Logger
	stores   *cli.Stores
	reporter *report.Reporter

	amqp *amqp.Client
	feed *services.ChangeFeed
}

var app appState

var rootCmd = &cobra.Command{
	Use:   "bizledger",
	Short: "Small-business ledger and task tracker",
	Long: `bizledger keeps vendors, expenses, revenues and tasks for a small business,
and builds monthly reports from them.

Configuration is read from the environment (and a .env file when present).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(monthsCmd())
	rootCmd.AddCommand(vendorsCmd())
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(revenuesCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(feedCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	teardown()
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "version", "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return nil
	}
	if cmd.HasParent() && cmd.Parent().Name() == "completion" {
		return nil
	}

	cli.LoadEnvFile()
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}
	logger = logger.WithComponent(applog.ComponentCLI)

	stores, err := cli.OpenStores(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	app = appState{
		cfg:      cfg,
		logger:   logger,
		stores:   stores,
		reporter: report.NewReporter(stores.Finance, cfg.ReportCacheSize, logger),
	}

	if cfg.AMQPEnabled() {
		startFeed(cmd.Context())
	}
	return nil
}

// startFeed forwards every store change of this invocation to the broker.
// An unreachable broker only costs a warning.
func startFeed(ctx context.Context) {
	client, err := newAMQPClient()
	if err != nil {
		app.logger.Warn("Change feed disabled", applog.NewFields().WithError(err).ToSlice()...)
		return
	}
	feed := services.NewChangeFeed(client, services.DefaultChangeFeedConfig(), app.logger)
	feed.Attach(app.stores.Finance)
	feed.Attach(app.stores.Tasks)
	if err := feed.Start(ctx); err != nil {
		app.logger.Warn("Change feed not started", applog.NewFields().WithError(err).ToSlice()...)
		_ = client.Close()
		return
	}
	app.amqp = client
	app.feed = feed
}

func newAMQPClient() (*amqp.Client, error) {
	return amqp.NewClient(amqp.Options{
		URL:        app.cfg.AMQPURL,
		Exchange:   app.cfg.AMQPExchange,
		RoutingKey: app.cfg.AMQPRoutingKey,
		Queue:      app.cfg.AMQPQueue,
		Logger:     app.logger,
	})
}

func teardown() {
	if app.feed != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := app.feed.Stop(ctx); err != nil {
			app.logger.Warn("Change feed stop failed", applog.NewFields().WithError(err).ToSlice()...)
		}
		cancel()
		stats := app.feed.Stats()
		app.logger.Debug("Change feed stopped", "published", stats.Published, "failed", stats.Failed, "dropped", stats.Dropped)
	}
	if app.amqp != nil {
		_ = app.amqp.Close()
	}
	if app.stores != nil {
		if err := app.stores.Close(); err != nil {
			app.logger.Error("Failed to close storage", applog.NewFields().WithError(err).ToSlice()...)
		}
	}
}

// resolveMonth parses a --month flag, defaulting to the newest month with records.
func resolveMonth(flag string) (core.MonthKey, error) {
	if flag != "" {
		return core.ParseMonthKey(flag)
	}
	return report.DefaultMonth(app.reporter.Months(), report.FallbackMonth), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "bizledger", version)
		},
	}
}
