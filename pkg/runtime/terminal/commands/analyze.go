package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/runtime/terminal/export"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
)

// displayMetric resolves the metric name shown in reports the same way
// the explorer defaults it: AQI first, then the first numeric column.
func displayMetric(cmd *cobra.Command, explorer analysis.Explorer, sel domain.FilterSelection) string {
	if sel.Metric != "" {
		return sel.Metric
	}
	schema := explorer.Describe(cmd.Context()).Schema
	if schema.AQIColumn != "" {
		return schema.AQIColumn
	}
	if len(schema.MetricColumns) > 0 {
		return schema.MetricColumns[0]
	}
	return ""
}

func NewInfoCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Describe the dataset columns and resolved schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, _, err := flags.open()
			if err != nil {
				return err
			}
			return reporter.Info(explorer.Describe(cmd.Context()))
		},
	}
	flags.register(cmd)
	return cmd
}

func NewSummaryCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Report KPIs for the selected metric",
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, sel, err := flags.open()
			if err != nil {
				return err
			}
			kpis, err := explorer.Summary(cmd.Context(), sel)
			if err != nil {
				return err
			}
			return reporter.Summary(kpis)
		},
	}
	flags.register(cmd)
	return cmd
}

func NewTopCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank the most polluted cities",
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, sel, err := flags.open()
			if err != nil {
				return err
			}
			ranking, err := explorer.Top(cmd.Context(), sel)
			if err != nil {
				return err
			}
			return reporter.Ranking(ranking)
		},
	}
	flags.register(cmd)
	return cmd
}

func NewTrendCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show yearly means for the selected metric",
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, sel, err := flags.open()
			if err != nil {
				return err
			}
			trend, err := explorer.Trend(cmd.Context(), sel)
			if err != nil {
				return err
			}
			return reporter.Trend(displayMetric(cmd, explorer, sel), trend)
		},
	}
	flags.register(cmd)
	return cmd
}

func NewForecastCmd(reporter *export.Reporter) *cobra.Command {
	var flags datasetFlags
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Extrapolate next year's mean from the yearly trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, sel, err := flags.open()
			if err != nil {
				return err
			}
			fc, err := explorer.Forecast(cmd.Context(), sel)
			if err != nil {
				return err
			}
			return reporter.Forecast(displayMetric(cmd, explorer, sel), fc)
		},
	}
	flags.register(cmd)
	return cmd
}

func NewExportCmd() *cobra.Command {
	var flags datasetFlags
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			explorer, sel, err := flags.open()
			if err != nil {
				return err
			}
			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return explorer.ExportCSV(cmd.Context(), sel, out)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default stdout)")
	return cmd
}
