package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/conneroisu/patterns/internal/monitoring"
	"github.com/conneroisu/patterns/internal/report"
	"github.com/spf13/cobra"
)

var (
	reportFormats string
	reportContent string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble the report document in one or more formats",
	Long: `Run the director against the builder for each requested format and print
the style, header, content and footer lines.

With --content the assembled document is printed a second time after its
content line is replaced. The replacement is stored as given, without the
format's markup.

Examples:
  patterns report                        # Every configured format
  patterns report --format html,xml
  patterns report -f text --content "Sales grew by 35%"`,
	RunE: runReportCommand,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportFormats, "format", "f", "", "Comma separated formats (text, html, xml); default from config")
	reportCmd.Flags().StringVar(&reportContent, "content", "", "Replacement content applied after assembly")
	AddFlagValidation(reportCmd, "format", ValidateDocumentFormats)
}

func runReportCommand(cmd *cobra.Command, _ []string) error {
	formats := appConfig.ReportFormats()
	if reportFormats != "" {
		formats = nil
		for _, name := range strings.Split(reportFormats, ",") {
			f, err := report.ParseFormat(name)
			if err != nil {
				return err
			}
			formats = append(formats, f)
		}
	}

	director := report.NewDirector(appConfig.Report.Content)
	for _, f := range formats {
		if err := assembleAndRender(cmd.Context(), cmd.OutOrStdout(), director, f, reportContent, nil); err != nil {
			return err
		}
	}
	return nil
}

// assembleAndRender prints the document for format under a heading. A
// non-empty update is applied with UpdateContent and the document printed
// again.
func assembleAndRender(ctx context.Context, out io.Writer, director *report.Director, format report.Format,
	update string, metrics *monitoring.ApplicationMetrics,
) error {
	doc, err := director.Assemble(format)
	if err != nil {
		return err
	}
	if metrics != nil {
		metrics.DocumentAssembled(format.String())
	}
	appLogger.Debug(ctx, "Document assembled", "format", format.String())

	fmt.Fprintf(out, "== %s ==\n", format.Heading())
	if err := doc.Render(out); err != nil {
		return err
	}

	if update != "" {
		doc.UpdateContent(update)
		fmt.Fprintf(out, "-- %s after content update --\n", format.Heading())
		if err := doc.Render(out); err != nil {
			return err
		}
	}

	fmt.Fprintln(out)
	return nil
}
