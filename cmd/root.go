// Package cmd provides the command-line interface for patterns.
//
// Configuration System:
//
//	The CLI reads configuration from several sources with clear precedence:
//	1. Command-line flags (--config, --log-level, ...) - highest priority
//	2. PATTERNS_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (PATTERNS_DEMO_WORKERS, ...)
//	4. Configuration file (.patterns.yml) - lowest priority
//
// Environment Variables:
//
//	PATTERNS_CONFIG_FILE: Path to custom configuration file
//	PATTERNS_SETTINGS_FILE: Where the settings store is saved
//	PATTERNS_DEMO_WORKERS: Goroutines racing for the settings store
//	And the rest following the PATTERNS_<SECTION>_<OPTION> pattern
package cmd

import (
	"github.com/conneroisu/patterns/internal/config"
	"github.com/conneroisu/patterns/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var (
	appConfig *config.Config
	appLogger logging.Logger = logging.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Demonstrates a settings singleton, a document builder and an order prototype",
	Long: `patterns walks through three object construction and access patterns:

  • a process-wide settings store created exactly once, even under races
  • a director assembling the same document as text, HTML or XML
  • an order template whose clones can be edited independently

Quick Start:
  patterns demo                   Run the full walkthrough
  patterns settings list          Show the persisted settings
  patterns report --format html   Assemble one document
  patterns order --quantity 5     Clone the sample order and edit the clone`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .patterns.yml, can also use PATTERNS_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// loadConfig runs before every command: it reads the configuration and
// builds the logger the command will use.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := config.Configure(viper.GetViper(), cfgFile); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lc := cfg.LoggerConfig()
	lc.Output = cmd.ErrOrStderr()
	logger := logging.NewLogger(lc)

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug(cmd.Context(), "Using config file", "path", used)
	}

	appConfig = cfg
	appLogger = logger
	return nil
}
