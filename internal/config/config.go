// Package config provides configuration management for the patterns CLI
// using Viper for loading from files, environment variables and flags.
//
// The configuration covers where the settings store persists itself, which
// document formats the report command assembles and with what text, the demo
// worker count, the sample order, and logging.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/patterns/internal/errors"
	"github.com/conneroisu/patterns/internal/logging"
	"github.com/conneroisu/patterns/internal/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// MaxWorkers bounds demo.workers.
const MaxWorkers = 64

type Config struct {
	Settings SettingsConfig `yaml:"settings" mapstructure:"settings"`
	Report   ReportConfig   `yaml:"report" mapstructure:"report"`
	Demo     DemoConfig     `yaml:"demo" mapstructure:"demo"`
	Order    OrderConfig    `yaml:"order" mapstructure:"order"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

type SettingsConfig struct {
	File         string `yaml:"file" mapstructure:"file"`
	SeedDatabase bool   `yaml:"seed_database" mapstructure:"seed_database"`
}

type ReportConfig struct {
	Formats        []string `yaml:"formats" mapstructure:"formats"`
	report.Content `yaml:",inline" mapstructure:",squash"`
}

type DemoConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OrderConfig describes the single-item sample order. Money and percent are
// kept as strings and parsed with decimal during validation.
type OrderConfig struct {
	Item          string `yaml:"item" mapstructure:"item"`
	Price         string `yaml:"price" mapstructure:"price"`
	Quantity      int    `yaml:"quantity" mapstructure:"quantity"`
	Delivery      string `yaml:"delivery" mapstructure:"delivery"`
	Discount      string `yaml:"discount" mapstructure:"discount"`
	PaymentMethod string `yaml:"payment_method" mapstructure:"payment_method"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// EnvPrefix is the prefix of environment overrides, e.g. PATTERNS_DEMO_WORKERS.
const EnvPrefix = "PATTERNS"

var envKeyReplacer = strings.NewReplacer(".", "_")

// Configure points v at its config file and enables environment overrides.
//
// Config file priority (highest to lowest):
//  1. cfgFile, from the --config flag
//  2. the PATTERNS_CONFIG_FILE environment variable
//  3. .patterns.yml in the current directory
//
// A missing default file is not an error; an explicit one that cannot be
// read is.
func Configure(v *viper.Viper, cfgFile string) error {
	explicit := true
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv(EnvPrefix + "_CONFIG_FILE"); envConfigFile != "" {
		v.SetConfigFile(envConfigFile)
	} else {
		explicit = false
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".patterns")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && stderrors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError(errors.ErrCodeConfigInvalid, "reading config file", err).
			WithFile(v.ConfigFileUsed())
	}
	return nil
}

// SetDefaults registers every default on v so that env overrides resolve
// even for keys missing from the config file.
func SetDefaults(v *viper.Viper) {
	content := report.DefaultContent()

	v.SetDefault("settings.file", "config.txt")
	v.SetDefault("settings.seed_database", true)

	v.SetDefault("report.formats", []string{"text", "html", "xml"})
	v.SetDefault("report.style", content.Style)
	v.SetDefault("report.header", content.Header)
	v.SetDefault("report.content", content.Content)
	v.SetDefault("report.footer", content.Footer)

	v.SetDefault("demo.workers", 2)

	v.SetDefault("order.item", "Phone")
	v.SetDefault("order.price", "500")
	v.SetDefault("order.quantity", 1)
	v.SetDefault("order.delivery", "30")
	v.SetDefault("order.discount", "15")
	v.SetDefault("order.payment_method", "Card")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals v, fills defaults and validates the result.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "decoding configuration", err)
	}

	// Handle formats set as a comma separated env var (workaround for viper slice handling)
	if len(config.Report.Formats) == 1 && strings.Contains(config.Report.Formats[0], ",") {
		config.Report.Formats = strings.Split(config.Report.Formats[0], ",")
	}

	if err := validateConfig(&config); err != nil {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "invalid configuration", err)
	}

	return &config, nil
}

// ReportFormats returns the configured formats in configured order.
func (c *Config) ReportFormats() []report.Format {
	formats := make([]report.Format, 0, len(c.Report.Formats))
	for _, name := range c.Report.Formats {
		// validated in Load
		f, _ := report.ParseFormat(strings.TrimSpace(name))
		formats = append(formats, f)
	}
	return formats
}

// LoggerConfig converts the log section for logging.NewLogger.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		lc.Level = level
	}
	lc.Format = c.Log.Format
	return lc
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validatePath(config.Settings.File); err != nil {
		return fmt.Errorf("settings.file: %w", err)
	}

	if len(config.Report.Formats) == 0 {
		return fmt.Errorf("report.formats: at least one format is required")
	}
	for _, name := range config.Report.Formats {
		if _, err := report.ParseFormat(strings.TrimSpace(name)); err != nil {
			return fmt.Errorf("report.formats: %w", err)
		}
	}

	if config.Demo.Workers < 1 || config.Demo.Workers > MaxWorkers {
		return fmt.Errorf("demo.workers %d is not in valid range 1-%d", config.Demo.Workers, MaxWorkers)
	}

	if err := validateOrderConfig(&config.Order); err != nil {
		return fmt.Errorf("order config: %w", err)
	}

	if _, err := logging.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", config.Log.Format)
	}

	return nil
}

// validateOrderConfig validates the sample order values
func validateOrderConfig(config *OrderConfig) error {
	if config.Quantity < 0 {
		return fmt.Errorf("quantity %d must not be negative", config.Quantity)
	}

	for name, value := range map[string]string{
		"price":    config.Price,
		"delivery": config.Delivery,
		"discount": config.Discount,
	} {
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s %q is not a number: %w", name, value, err)
		}
		if d.IsNegative() {
			return fmt.Errorf("%s %s must not be negative", name, value)
		}
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	// Clean the path
	cleanPath := filepath.Clean(path)

	// Reject path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	// Reject dangerous characters
	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
