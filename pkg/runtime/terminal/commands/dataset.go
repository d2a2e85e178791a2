package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
	"github.com/aqtools/air-atlas/pkg/services/dataset"
)

// datasetFlags are the flags shared by every analysis command.
type datasetFlags struct {
	dataPath string
	name     string
	metric   string
	cities   string
	years    string
	topN     int
	mode     string
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dataPath, "data", "", "Path to the CSV dataset")
	cmd.Flags().StringVar(&f.name, "name", "air-quality", "Dataset display name")
	cmd.Flags().StringVar(&f.metric, "metric", "", "Metric column (defaults to the AQI column)")
	cmd.Flags().StringVar(&f.cities, "cities", "", "Comma-separated city allow-list (default all)")
	cmd.Flags().StringVar(&f.years, "years", "", "Comma-separated year allow-list (default all)")
	cmd.Flags().IntVar(&f.topN, "top", domain.DefaultTopN, "Number of top cities to report (1-20)")
	cmd.Flags().StringVar(&f.mode, "mode", string(analysis.ClassifyHeadline),
		"Classification mode: headline or selected")
	_ = cmd.MarkFlagRequired("data")
}

// open loads and prepares the dataset and translates the flags into a
// selection. Unset city/year flags mean "all observed values".
func (f *datasetFlags) open() (analysis.Explorer, domain.FilterSelection, error) {
	var sel domain.FilterSelection

	raw, err := dataset.Load(f.dataPath, f.name)
	if err != nil {
		return nil, sel, err
	}
	t, schema, err := dataset.Prepare(raw)
	if err != nil {
		return nil, sel, err
	}

	explorer := analysis.NewExplorer(t, schema, analysis.ClassificationMode(f.mode), f.topN)

	if f.cities != "" {
		for _, c := range strings.Split(f.cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				sel.Cities = append(sel.Cities, c)
			}
		}
	}
	if f.years != "" {
		for _, y := range strings.Split(f.years, ",") {
			y = strings.TrimSpace(y)
			if y == "" {
				continue
			}
			n, err := strconv.Atoi(y)
			if err != nil {
				return nil, sel, fmt.Errorf("invalid year %q", y)
			}
			sel.Years = append(sel.Years, n)
		}
	}
	sel.Metric = f.metric
	sel.TopN = f.topN
	return explorer, sel, nil
}
