package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/conneroisu/patterns/internal/logging"
	"github.com/conneroisu/patterns/internal/monitoring"
	"github.com/conneroisu/patterns/internal/report"
	"github.com/conneroisu/patterns/internal/settings"
	"github.com/spf13/cobra"
)

// demoUpdatedContent replaces the text document's content after its first render.
const demoUpdatedContent = "Sales grew by 35% after the year-end revision"

var demoWithMetrics bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the full walkthrough",
	Long: `Run all three patterns in turn:

  1. demo.workers goroutines race to obtain the settings store and print the
     address each one got; it is the same store every time. The store is
     then edited, seeded with the demo database credentials and saved to
     settings.file.
  2. The director assembles the report in every configured format. The text
     document is printed, its content replaced, and printed again.
  3. The sample order is cloned, the clone's quantity and discount changed,
     and both orders printed to show they are independent.

Examples:
  patterns demo
  patterns demo --metrics              # Append Prometheus counters
  PATTERNS_DEMO_WORKERS=16 patterns demo`,
	Args: cobra.NoArgs,
	RunE: runDemoCommand,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().BoolVar(&demoWithMetrics, "metrics", false, "Print Prometheus metrics after the walkthrough")
}

func runDemoCommand(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	metrics := monitoring.NewApplicationMetrics(monitoring.DefaultNamespace)
	if err := metrics.RegisterCounterFunc("settings", "store_constructions_total",
		"Settings stores constructed by the shared accessor.",
		func() float64 { return float64(settings.Constructions()) }); err != nil {
		return err
	}

	fmt.Fprintln(out, "=== Settings store ===")
	if err := timed(ctx, "demo.settings", func() error {
		return demoSettings(ctx, out, metrics)
	}); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n=== Report ===")
	if err := timed(ctx, "demo.report", func() error {
		director := report.NewDirector(appConfig.Report.Content)
		for _, f := range appConfig.ReportFormats() {
			update := ""
			if f == report.FormatText {
				update = demoUpdatedContent
			}
			if err := assembleAndRender(ctx, out, director, f, update, metrics); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}

	fmt.Fprintln(out, "=== Order ===")
	if err := timed(ctx, "demo.order", func() error {
		original, err := buildSampleOrder(appConfig.Order)
		if err != nil {
			return err
		}
		clone, err := cloneAndEdit(ctx, original, 5, "40", metrics)
		if err != nil {
			return err
		}
		return renderOrders(cmd, original, clone)
	}); err != nil {
		return err
	}

	if demoWithMetrics {
		fmt.Fprintln(out, "\n=== Metrics ===")
		return metrics.WriteText(out)
	}
	return nil
}

// timed runs fn and logs its duration under operation.
func timed(ctx context.Context, operation string, fn func() error) error {
	op := logging.StartOperation(appLogger, operation)
	if err := fn(); err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx)
	return nil
}

// demoSettings races the configured number of workers to the shared store,
// then edits, seeds and saves it.
func demoSettings(ctx context.Context, out io.Writer, metrics *monitoring.ApplicationMetrics) error {
	workers := appConfig.Demo.Workers
	stores := make([]*settings.Store, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			stores[i] = settings.Instance()
		}(i)
	}
	wg.Wait()

	for i, s := range stores {
		fmt.Fprintf(out, "worker %d got store %p\n", i+1, s)
	}
	fmt.Fprintf(out, "stores constructed: %d\n", settings.Constructions())

	store := settings.Instance()
	store.Set("theme", "dark")
	metrics.SettingsOperation("set", nil)

	theme, err := store.Get("theme")
	metrics.SettingsOperation("get", err)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "theme=%s\n", theme)

	if appConfig.Settings.SeedDatabase {
		store.LoadSimulatedDatabase()
		metrics.SettingsOperation("seed", nil)
		for _, key := range []string{"db_user", "db_password"} {
			value, err := store.Get(key)
			metrics.SettingsOperation("get", err)
			if err != nil {
				return err
			}
			appLogger.Debug(ctx, "Seeded setting", "key", key, "value", logging.SanitizeForLog(key, value))
		}
	}

	path := appConfig.Settings.File
	err = store.SaveToFile(path)
	metrics.SettingsOperation("save", err)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %d settings to %s\n", store.Len(), path)
	return nil
}
