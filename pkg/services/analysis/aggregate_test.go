package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

func TestCityStats_Mean(t *testing.T) {
	table, schema := loadSample(t)

	stats := CityStats(table, schema, "AQI", ReduceMean)
	require.Len(t, stats, 3)
	assert.Equal(t, domain.CityStat{City: "Delhi", Value: 220}, stats[0])
	assert.Equal(t, domain.CityStat{City: "Mumbai", Value: 110}, stats[1])
	assert.Equal(t, domain.CityStat{City: "Chennai", Value: 90}, stats[2])
}

func TestCityStats_Reductions(t *testing.T) {
	table, schema := loadSample(t)

	min := CityStats(table, schema, "AQI", ReduceMin)
	assert.Equal(t, 200.0, min[0].Value)

	max := CityStats(table, schema, "AQI", ReduceMax)
	assert.Equal(t, 240.0, max[0].Value)

	count := CityStats(table, schema, "AQI", ReduceCount)
	assert.Equal(t, 2.0, count[0].Value)

	// sample std of {200, 240}
	std := CityStats(table, schema, "AQI", ReduceStd)
	assert.InDelta(t, 28.2843, std[0].Value, 0.001)
}

func TestCityStats_StdUndefinedForSingleValueGroups(t *testing.T) {
	table, schema := loadTable(t, "City,AQI\nDelhi,100\nMumbai,200\n")

	stats := CityStats(table, schema, "AQI", ReduceStd)
	assert.Empty(t, stats, "single-reading groups have no sample std")
}

func TestTopCities_SortsDescendingAndTruncates(t *testing.T) {
	table, schema := loadSample(t)

	top := TopCities(table, schema, "AQI", ReduceMean, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Delhi", top[0].City)
	assert.Equal(t, "Mumbai", top[1].City)
}

func TestTopCities_LargeNReturnsAllGroups(t *testing.T) {
	table, schema := loadSample(t)

	top := TopCities(table, schema, "AQI", ReduceMean, 20)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Delhi", "Mumbai", "Chennai"},
		[]string{top[0].City, top[1].City, top[2].City})
}

func TestTopCities_TiesKeepFirstSeenOrder(t *testing.T) {
	csv := "City,AQI\nBeta,100\nAlpha,100\nGamma,100\n"
	table, schema := loadTable(t, csv)

	for i := 0; i < 5; i++ {
		top := TopCities(table, schema, "AQI", ReduceMean, 10)
		require.Len(t, top, 3)
		assert.Equal(t, "Beta", top[0].City)
		assert.Equal(t, "Alpha", top[1].City)
		assert.Equal(t, "Gamma", top[2].City)
	}
}

func TestWorstBest(t *testing.T) {
	table, schema := loadSample(t)

	worst, best := WorstBest(table, schema, "AQI")
	require.NotNil(t, worst)
	require.NotNil(t, best)
	assert.Equal(t, "Delhi", worst.City)
	assert.Equal(t, "Chennai", best.City)
}

func TestWorstBest_EmptyTable(t *testing.T) {
	table, schema := loadSample(t)
	empty := Filter(table, schema, domain.FilterSelection{Cities: []string{}})

	worst, best := WorstBest(empty, schema, "AQI")
	assert.Nil(t, worst)
	assert.Nil(t, best)
}

func TestYearlyMeans(t *testing.T) {
	table, schema := loadSample(t)

	trend := YearlyMeans(table, schema, "AQI")
	require.Len(t, trend, 2)
	assert.Equal(t, domain.TrendPoint{Year: 2020, Value: (200.0 + 100 + 80) / 3}, trend[0])
	assert.Equal(t, domain.TrendPoint{Year: 2021, Value: (240.0 + 120 + 100) / 3}, trend[1])
}

func TestYearlyMeans_NoYearColumn(t *testing.T) {
	table, schema := loadTable(t, "City,AQI\nDelhi,100\n")
	assert.Nil(t, YearlyMeans(table, schema, "AQI"))
}

func TestYearCityMeans(t *testing.T) {
	table, schema := loadSample(t)

	cells := YearCityMeans(table, schema, "AQI")
	require.Len(t, cells, 6)
	assert.Equal(t, domain.HeatmapCell{Year: 2020, City: "Delhi", Value: 200}, cells[0])
	for i := 1; i < len(cells); i++ {
		assert.GreaterOrEqual(t, cells[i].Year, cells[i-1].Year)
	}
}

func TestLocationMeans(t *testing.T) {
	csv := `City,Latitude,Longitude,AQI
Delhi,28.61,77.21,200
Delhi,28.61,77.21,240
Mumbai,19.08,72.88,100
`
	table, schema := loadTable(t, csv)

	points := LocationMeans(table, schema, "AQI")
	require.Len(t, points, 2)
	assert.Equal(t, domain.GeoPoint{City: "Delhi", Lat: 28.61, Lon: 77.21, Value: 220, Count: 2}, points[0])
	assert.Equal(t, domain.GeoPoint{City: "Mumbai", Lat: 19.08, Lon: 72.88, Value: 100, Count: 1}, points[1])
}

func TestParseReduction(t *testing.T) {
	op, err := ParseReduction("")
	require.NoError(t, err)
	assert.Equal(t, ReduceMean, op)

	_, err = ParseReduction("median")
	assert.Error(t, err)
}

func TestAggregation_DeterministicAcrossRuns(t *testing.T) {
	table, schema := loadSample(t)

	first := TopCities(table, schema, "PM2.5", ReduceMean, 5)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, TopCities(table, schema, "PM2.5", ReduceMean, 5))
	}
}
