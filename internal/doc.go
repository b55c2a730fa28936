// Package internal contains the implementation packages behind the patterns
// CLI.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - settings: process-wide key/value store with file persistence and live reload
//   - report: director and format builders for text, HTML and XML documents
//   - order: order template with deep-copy cloning
//   - config: configuration loading and validation with Viper
//   - errors: structured error type shared by every package
//   - logging: structured logging over log/slog
//   - monitoring: Prometheus counters for the demo
//   - watcher: debounced file system monitoring
//   - version: build information
//
// # Inter-Package Communication
//
//   - The settings reloader drives a watcher and loads the file on change
//   - cmd wires config, logging and monitoring around the three domain packages
//   - Domain packages report failures as *errors.PatternsError
//
// # Concurrency
//
// Only settings is shared between goroutines. Its accessor constructs the
// store at most once; reads and writes afterwards do not block. Saving and
// loading the same file from several goroutines is not serialized.
package internal
