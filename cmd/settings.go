package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/conneroisu/patterns/internal/logging"
	"github.com/conneroisu/patterns/internal/monitoring"
	"github.com/conneroisu/patterns/internal/settings"
	"github.com/conneroisu/patterns/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	settingsOutput   *OutputFlags
	watchDebounce    time.Duration
	watchWithMetrics bool
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"s"},
	Short:   "Read and change the persisted settings",
	Long: `Every settings command loads the settings file (settings.file, default
config.txt) into the shared store first. Commands that change the store
write it back afterwards.

The file holds one key=value pair per line. Lines that do not split into
exactly one key and one value are ignored, so values containing '=' are not
preserved.`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		value, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		store.Set(args[0], args[1])
		appLogger.Info(cmd.Context(), "Setting updated",
			"key", args[0], "value", logging.SanitizeForLog(args[0], args[1]))
		return persistStore(cmd.Context(), store)
	},
}

var settingsDeleteCmd = &cobra.Command{
	Use:     "delete <key>",
	Aliases: []string{"rm"},
	Short:   "Remove a key and save",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		if !store.Delete(args[0]) {
			_, err := store.Get(args[0])
			return err
		}
		return persistStore(cmd.Context(), store)
	},
}

var settingsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Print every key and value",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		snapshot := store.Snapshot()
		if handled, err := settingsOutput.Encode(cmd.OutOrStdout(), snapshot); handled {
			return err
		}
		printSnapshot(cmd, snapshot)
		return nil
	},
}

var settingsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the demo database credentials and save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		store.LoadSimulatedDatabase()
		return persistStore(cmd.Context(), store)
	},
}

var settingsSaveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Export the settings to another file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.SaveToFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d settings to %s\n", store.Len(), args[0])
		return nil
	},
}

var settingsLoadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Merge settings from another file and save",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s, %d settings\n", args[0], store.Len())
		return persistStore(cmd.Context(), store)
	},
}

var settingsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload and print the settings whenever the file changes",
	Long: `Watch the settings file and reload the shared store after every change,
printing the new contents. A removed file leaves the current values in place.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runSettingsWatch,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(
		settingsGetCmd,
		settingsSetCmd,
		settingsDeleteCmd,
		settingsListCmd,
		settingsSeedCmd,
		settingsSaveCmd,
		settingsLoadCmd,
		settingsWatchCmd,
	)

	settingsOutput = AddOutputFlags(settingsListCmd)
	settingsWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Wait this long after the last change before reloading")
	settingsWatchCmd.Flags().BoolVar(&watchWithMetrics, "metrics", false, "Print watcher metrics on exit")
}

// openStore returns the shared store holding exactly the pairs in the
// settings file. A missing file yields an empty store.
func openStore(ctx context.Context) (*settings.Store, error) {
	store := settings.Instance()
	store.Clear()

	path := appConfig.Settings.File
	op := logging.StartOperation(appLogger.WithComponent("settings"), "load")
	if err := store.LoadFromFile(path); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			op.EndWithError(ctx, err)
			return nil, err
		}
		appLogger.Debug(ctx, "Settings file not found, starting empty", "path", path)
	}
	op.End(ctx)
	return store, nil
}

func persistStore(ctx context.Context, store *settings.Store) error {
	path := appConfig.Settings.File
	op := logging.StartOperation(appLogger.WithComponent("settings"), "save")
	if err := store.SaveToFile(path); err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx)
	appLogger.Debug(ctx, "Settings saved", "path", path, "keys", store.Len())
	return nil
}

func printSnapshot(cmd *cobra.Command, snapshot map[string]string) {
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, k := range keys {
		fmt.Fprintf(out, "%s=%s\n", k, snapshot[k])
	}
}

func runSettingsWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	path := appConfig.Settings.File
	reloader, err := settings.NewReloader(store, path, watchDebounce, appLogger)
	if err != nil {
		return err
	}

	metrics := monitoring.NewApplicationMetrics(monitoring.DefaultNamespace)
	reloader.OnReload(func(events []watcher.ChangeEvent, err error) {
		for _, ev := range events {
			metrics.FileWatcherEvent(ev.Type.String())
		}
		metrics.SettingsOperation("reload", err)
		if err != nil {
			appLogger.Error(ctx, err, "Settings reload failed", "path", path)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s reloaded at %s ---\n", path, time.Now().Format(time.TimeOnly))
		printSnapshot(cmd, store.Snapshot())
	})

	if err := reloader.Start(ctx); err != nil {
		return err
	}
	defer reloader.Stop()

	appLogger.Info(ctx, "Watching settings file", "path", path)
	printSnapshot(cmd, store.Snapshot())

	<-ctx.Done()

	if watchWithMetrics {
		return metrics.WriteText(cmd.OutOrStdout())
	}
	return nil
}
