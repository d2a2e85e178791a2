package charts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/dataset"
)

const sampleCSV = `City,Date,AQI,PM2.5
Delhi,2020-01-05,200,110
Mumbai,2020-02-10,100,55
Delhi,2021-01-05,240,120
Mumbai,2021-02-10,120,60
`

func loadSample(t *testing.T) (*domain.Table, domain.Schema) {
	t.Helper()
	raw, err := dataset.ReadTable(strings.NewReader(sampleCSV), "test")
	require.NoError(t, err)
	table, schema, err := dataset.Prepare(raw)
	require.NoError(t, err)
	return table, schema
}

func TestBuild_BarChart(t *testing.T) {
	table, schema := loadSample(t)

	spec, err := Build(table, schema, Request{Type: Bar, Metric: "AQI", TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"Delhi", "Mumbai"}, spec.Labels)
	assert.Equal(t, []float64{220, 110}, spec.Values)
}

func TestBuild_Histogram(t *testing.T) {
	table, schema := loadSample(t)

	spec, err := Build(table, schema, Request{Type: Histogram, Metric: "PM2.5"})
	require.NoError(t, err)
	assert.Equal(t, []float64{110, 55, 120, 60}, spec.Samples)
}

func TestBuild_BoxChart(t *testing.T) {
	table, schema := loadSample(t)

	spec, err := Build(table, schema, Request{Type: Box, Metric: "AQI"})
	require.NoError(t, err)
	require.Len(t, spec.Boxes, 2)
	assert.Equal(t, "Delhi", spec.Boxes[0].City)
	assert.Equal(t, []float64{200, 240}, spec.Boxes[0].Values)
}

func TestBuild_ScatterChart(t *testing.T) {
	table, schema := loadSample(t)

	spec, err := Build(table, schema, Request{Type: Scatter, Metric: "AQI"})
	require.NoError(t, err)
	require.Len(t, spec.Points, 4)
	assert.Equal(t, ScatterPoint{Year: 2020, City: "Delhi", Value: 200}, spec.Points[0])
}

func TestBuild_UnknownTypeIsRenderError(t *testing.T) {
	table, schema := loadSample(t)

	_, err := Build(table, schema, Request{Type: "sunburst", Metric: "AQI"})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Reason, "unknown chart type")
}

func TestBuild_NonNumericMetricIsRenderError(t *testing.T) {
	table, schema := loadSample(t)

	_, err := Build(table, schema, Request{Type: Bar, Metric: "City"})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Reason, "not numeric")
}

func TestBuild_GroupedChartNeedsCityColumn(t *testing.T) {
	raw, err := dataset.ReadTable(strings.NewReader("Station,AQI\nA,100\n"), "test")
	require.NoError(t, err)
	table, schema, err := dataset.Prepare(raw)
	require.NoError(t, err)

	_, err = Build(table, schema, Request{Type: Pie, Metric: "AQI"})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
}

func TestService_RenderDefaultsMetricAndFilters(t *testing.T) {
	table, schema := loadSample(t)
	svc := NewService(table, schema)

	spec, err := svc.Render(context.Background(),
		domain.FilterSelection{Cities: []string{"Mumbai"}},
		Request{Type: Bar, TopN: 5})
	require.NoError(t, err)
	assert.Equal(t, "AQI", spec.Metric)
	assert.Equal(t, []string{"Mumbai"}, spec.Labels)
}

func TestService_RenderErrorLeavesStateUsable(t *testing.T) {
	table, schema := loadSample(t)
	svc := NewService(table, schema)

	_, err := svc.Render(context.Background(), domain.FilterSelection{}, Request{Type: "nope"})
	require.Error(t, err)

	spec, err := svc.Render(context.Background(), domain.FilterSelection{}, Request{Type: Bar, TopN: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, spec.Labels)
}
