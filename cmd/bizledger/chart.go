package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bizledger/internal/charts"
	"bizledger/internal/cli"
	applog "bizledger/internal/log"
	"bizledger/internal/tasks"
)

func chartCmd() *cobra.Command {
	var month, outDir string
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render report and task charts as PNG files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := resolveMonth(month)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			logger := app.logger.WithComponent(applog.ComponentCharts)
			rep := app.reporter.Monthly(key)
			sum := tasks.Summarize(app.stores.Tasks.Tasks())
			gen := charts.NewGenerator()

			renders := map[string]func() ([]byte, error){
				"daily-" + key.String() + ".png":    func() ([]byte, error) { return gen.DailyChart(rep) },
				"revenue-" + key.String() + ".png":  func() ([]byte, error) { return gen.CategoryPie(rep, false) },
				"expenses-" + key.String() + ".png": func() ([]byte, error) { return gen.CategoryPie(rep, true) },
				"tasks.png":                         func() ([]byte, error) { return gen.TaskStatusPie(sum) },
			}

			var g errgroup.Group
			for name, render := range renders {
				g.Go(func() error {
					data, err := render()
					if err != nil {
						return fmt.Errorf("%s: %w", name, err)
					}
					if data == nil {
						logger.Debug("Nothing to chart", "file", name)
						return nil
					}
					path := filepath.Join(outDir, name)
					if err := os.WriteFile(path, data, 0o644); err != nil {
						return fmt.Errorf("failed to write %s: %w", path, err)
					}
					fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("wrote "+path))
					return nil
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to chart (YYYY-MM)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "charts", "output directory")
	return cmd
}
