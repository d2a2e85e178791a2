package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKPIs_Sample(t *testing.T) {
	table, schema := loadSample(t)

	set := KPIs(table, schema.AQIColumn)
	assert.Equal(t, 6, set.Count)
	require.True(t, set.Mean.Defined)
	assert.InDelta(t, 140.0, set.Mean.Value, 1e-9)
	assert.Equal(t, 80.0, set.Min.Value)
	assert.Equal(t, 240.0, set.Max.Value)
	assert.True(t, set.Std.Defined)
}

func TestKPIs_NonFiniteCellsStayOutOfStats(t *testing.T) {
	table, _ := loadTable(t, "City,AQI\nDelhi,NaN\nMumbai,100\nChennai,200\n")

	set := KPIs(table, "AQI")
	assert.Equal(t, 2, set.Count)
	require.True(t, set.Mean.Defined)
	assert.InDelta(t, 150.0, set.Mean.Value, 1e-9)
	assert.Equal(t, 100.0, set.Min.Value)
	assert.Equal(t, 200.0, set.Max.Value)
}

func TestKPIs_UnknownMetricUndefined(t *testing.T) {
	table, _ := loadSample(t)

	set := KPIs(table, "Ozone")
	assert.Zero(t, set.Count)
	assert.False(t, set.Mean.Defined)
	assert.False(t, set.Std.Defined)
}
