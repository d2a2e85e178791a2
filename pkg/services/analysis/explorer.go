package analysis

import (
	"context"
	"fmt"
	"io"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/category"
	"github.com/aqtools/air-atlas/pkg/services/dataset"
)

// ClassificationMode decides which column carries severity bands in
// record output: the headline AQI column (the classic behavior) or
// whichever metric is currently selected.
type ClassificationMode string

const (
	ClassifyHeadline ClassificationMode = "headline"
	ClassifySelected ClassificationMode = "selected"
)

// Explorer is the pipeline facade consumed by the presentation layer.
// Every call recomputes from the immutable source table and the given
// selection; there is no per-session state to invalidate.
type Explorer interface {
	Describe(ctx context.Context) domain.DatasetInfo
	Options(ctx context.Context) domain.FilterOptions
	Summary(ctx context.Context, sel domain.FilterSelection) (domain.KPISet, error)
	Records(ctx context.Context, sel domain.FilterSelection) (*domain.Table, []string, error)
	Top(ctx context.Context, sel domain.FilterSelection) (domain.Ranking, error)
	Trend(ctx context.Context, sel domain.FilterSelection) ([]domain.TrendPoint, error)
	Forecast(ctx context.Context, sel domain.FilterSelection) (domain.ForecastResult, error)
	Heatmap(ctx context.Context, sel domain.FilterSelection) ([]domain.HeatmapCell, error)
	Geo(ctx context.Context, sel domain.FilterSelection) ([]domain.GeoPoint, error)
	ExportCSV(ctx context.Context, sel domain.FilterSelection, w io.Writer) error
}

type datasetExplorer struct {
	table   *domain.Table
	schema  domain.Schema
	options domain.FilterOptions
	mode    ClassificationMode
}

// NewExplorer wraps a prepared source table. Filter options are fixed
// here, from the unfiltered table, so later filtering cannot shrink the
// offered choices.
func NewExplorer(t *domain.Table, s domain.Schema, mode ClassificationMode, defaultTopN int) Explorer {
	if mode != ClassifySelected {
		mode = ClassifyHeadline
	}
	return &datasetExplorer{
		table:   t,
		schema:  s,
		options: Options(t, s, defaultTopN),
		mode:    mode,
	}
}

func (e *datasetExplorer) Describe(_ context.Context) domain.DatasetInfo {
	info := domain.DatasetInfo{
		Name:   e.table.Name,
		Rows:   e.table.NumRows(),
		Schema: e.schema,
	}
	for _, c := range e.table.Columns {
		info.Columns = append(info.Columns, domain.ColumnInfo{Name: c.Name, Kind: c.Kind, Derived: c.Derived})
	}
	return info
}

func (e *datasetExplorer) Options(_ context.Context) domain.FilterOptions {
	return e.options
}

// resolveMetric defaults an empty selection to the headline AQI column,
// or the first metric candidate, and rejects names that are not numeric
// columns.
func (e *datasetExplorer) resolveMetric(sel domain.FilterSelection) (string, error) {
	if sel.Metric == "" {
		if e.schema.HasAQI() {
			return e.schema.AQIColumn, nil
		}
		return e.schema.MetricColumns[0], nil
	}
	if !e.schema.IsMetric(sel.Metric) {
		return "", fmt.Errorf("unknown metric %q", sel.Metric)
	}
	return sel.Metric, nil
}

func (e *datasetExplorer) filtered(sel domain.FilterSelection) *domain.Table {
	return Filter(e.table, e.schema, sel)
}

func (e *datasetExplorer) Summary(_ context.Context, sel domain.FilterSelection) (domain.KPISet, error) {
	metric, err := e.resolveMetric(sel)
	if err != nil {
		return domain.KPISet{}, err
	}
	return KPIs(e.filtered(sel), metric), nil
}

func (e *datasetExplorer) Records(_ context.Context, sel domain.FilterSelection) (*domain.Table, []string, error) {
	metric, err := e.resolveMetric(sel)
	if err != nil {
		return nil, nil, err
	}
	ft := e.filtered(sel)
	return ft, e.categoryLabels(ft, metric), nil
}

// categoryLabels returns one band label per row, empty where the value
// is missing. In headline mode the annotated category column is served
// as-is; in selected mode bands track the active metric.
func (e *datasetExplorer) categoryLabels(t *domain.Table, metric string) []string {
	if e.mode == ClassifyHeadline {
		if !e.schema.HasAQI() || e.schema.CategoryColumn == "" {
			return nil
		}
		cc, ok := t.Column(e.schema.CategoryColumn)
		if !ok {
			return nil
		}
		return append([]string(nil), cc.Text...)
	}

	mc, ok := t.Column(metric)
	if !ok || mc.Kind != domain.KindNumeric {
		return nil
	}
	labels := make([]string, t.NumRows())
	for i := range labels {
		if v, ok := mc.Value(i); ok {
			if label, ok := category.Classify(v); ok {
				labels[i] = string(label)
			}
		}
	}
	return labels
}

func (e *datasetExplorer) Top(_ context.Context, sel domain.FilterSelection) (domain.Ranking, error) {
	metric, err := e.resolveMetric(sel)
	if err != nil {
		return domain.Ranking{}, err
	}
	ft := e.filtered(sel)
	ranking := domain.Ranking{
		Metric:  metric,
		Entries: TopCities(ft, e.schema, metric, ReduceMean, sel.TopN),
	}
	ranking.Worst, ranking.Best = WorstBest(ft, e.schema, metric)
	return ranking, nil
}

func (e *datasetExplorer) Trend(_ context.Context, sel domain.FilterSelection) ([]domain.TrendPoint, error) {
	metric, err := e.resolveMetric(sel)
	if err != nil {
		return nil, err
	}
	return YearlyMeans(e.filtered(sel), e.schema, metric), nil
}

func (e *datasetExplorer) Forecast(ctx context.Context, sel domain.FilterSelection) (domain.ForecastResult, error) {
	trend, err := e.Trend(ctx, sel)
	if err != nil {
		return domain.ForecastResult{}, err
	}
	return Forecast(trend), nil
}

func (e *datasetExplorer) Heatmap(_ context.Context, sel domain.FilterSelection) ([]domain.HeatmapCell, error) {
	metric, err := e.resolveMetric(sel)
	if err != nil {
		return nil, err
	}
	return YearCityMeans(e.filtered(sel), e.schema, metric), nil
}

func (e *datasetExplorer) Geo(_ context.Context, sel domain.FilterSelection) ([]domain.GeoPoint, error) {
	metric, err := e.resolveMetric(sel)
	if err != nil {
		return nil, err
	}
	return LocationMeans(e.filtered(sel), e.schema, metric), nil
}

func (e *datasetExplorer) ExportCSV(_ context.Context, sel domain.FilterSelection, w io.Writer) error {
	return dataset.WriteCSV(w, e.filtered(sel))
}
