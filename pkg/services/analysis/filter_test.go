package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

func TestFilter_NilSelectionIsIdentity(t *testing.T) {
	table, schema := loadSample(t)

	got := Filter(table, schema, domain.FilterSelection{})
	assert.Equal(t, table.NumRows(), got.NumRows())
	assert.Equal(t, table.ColumnNames(), got.ColumnNames())
}

func TestFilter_FullSelectionEqualsUnfiltered(t *testing.T) {
	table, schema := loadSample(t)
	opts := Options(table, schema, domain.DefaultTopN)

	got := Filter(table, schema, domain.FilterSelection{Cities: opts.Cities, Years: opts.Years})
	require.Equal(t, table.NumRows(), got.NumRows())
	for ci := range table.Columns {
		assert.Equal(t, table.Columns[ci].Text, got.Columns[ci].Text)
	}
}

func TestFilter_ByCityAndYear(t *testing.T) {
	table, schema := loadSample(t)

	got := Filter(table, schema, domain.FilterSelection{
		Cities: []string{"Delhi"},
		Years:  []int{2021},
	})
	require.Equal(t, 1, got.NumRows())
	city, _ := got.Column("City")
	assert.Equal(t, "Delhi", city.Text[0])
}

func TestFilter_IsIdempotent(t *testing.T) {
	table, schema := loadSample(t)
	sel := domain.FilterSelection{Cities: []string{"Delhi", "Mumbai"}, Years: []int{2020}}

	once := Filter(table, schema, sel)
	twice := Filter(once, schema, sel)
	require.Equal(t, once.NumRows(), twice.NumRows())
	for ci := range once.Columns {
		assert.Equal(t, once.Columns[ci].Text, twice.Columns[ci].Text)
	}
}

func TestFilter_EmptySelectionYieldsEmptyTable(t *testing.T) {
	table, schema := loadSample(t)

	got := Filter(table, schema, domain.FilterSelection{Cities: []string{}})
	assert.Equal(t, 0, got.NumRows())
	assert.Equal(t, table.ColumnNames(), got.ColumnNames())
}

func TestFilter_MissingCityColumnIsPassThrough(t *testing.T) {
	table, schema := loadTable(t, "Station,AQI\nA,100\nB,200\n")

	got := Filter(table, schema, domain.FilterSelection{Cities: []string{"A"}})
	assert.Equal(t, 2, got.NumRows())
}

func TestOptions_ComputedFromUnfilteredTable(t *testing.T) {
	table, schema := loadSample(t)

	opts := Options(table, schema, domain.DefaultTopN)
	assert.Equal(t, []string{"Delhi", "Mumbai", "Chennai"}, opts.Cities)
	assert.Equal(t, []int{2020, 2021}, opts.Years)
	assert.Equal(t, []string{"AQI", "PM2.5", "Year", "Month"}, opts.Metrics)
	assert.Equal(t, domain.DefaultTopN, opts.DefaultTopN)
}
