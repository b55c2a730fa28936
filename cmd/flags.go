package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/conneroisu/patterns/internal/report"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var outputFormats = []string{OutputText, OutputJSON, OutputYAML}

// OutputFlags provides the --output flag shared by listing commands
type OutputFlags struct {
	Format string
}

// AddOutputFlags adds --output/-o to cmd with validation.
func AddOutputFlags(cmd *cobra.Command) *OutputFlags {
	flags := &OutputFlags{}
	cmd.Flags().StringVarP(&flags.Format, "output", "o", OutputText,
		"Output format ("+strings.Join(outputFormats, "|")+")")
	AddFlagValidation(cmd, "output", ValidateOutputFormat)
	return flags
}

// Encode writes v as JSON or YAML. Text output is left to the caller, which
// gets false back.
func (f *OutputFlags) Encode(w io.Writer, v interface{}) (bool, error) {
	switch f.Format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// AddFlagValidation adds validation for a specific flag
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// ValidateOutputFormat accepts text, json or yaml.
func ValidateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %s, must be one of: %s",
		format, strings.Join(outputFormats, ", "))
}

// ValidateDocumentFormats accepts a comma separated list of document formats.
func ValidateDocumentFormats(list string) error {
	for _, name := range strings.Split(list, ",") {
		if _, err := report.ParseFormat(name); err != nil {
			return err
		}
	}
	return nil
}

// ValidateQuantity accepts a non-negative integer.
func ValidateQuantity(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid quantity: %s", s)
	}
	if n < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", n)
	}
	return nil
}

// ValidatePercent accepts a number between 0 and 100.
func ValidatePercent(s string) error {
	p, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid percent: %s", s)
	}
	if p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("percent must be between 0 and 100, got %s", s)
	}
	return nil
}
