package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

func TestForecast_LinearExtrapolation(t *testing.T) {
	trend := []domain.TrendPoint{
		{Year: 2020, Value: 100},
		{Year: 2021, Value: 120},
	}

	fc := Forecast(trend)
	require.True(t, fc.Available)
	assert.Equal(t, 2022, fc.Year)
	assert.InDelta(t, 140, fc.Value, 1e-9)
	assert.InDelta(t, 20, fc.Slope, 1e-9)
}

func TestForecast_FitsThroughNoisyPoints(t *testing.T) {
	trend := []domain.TrendPoint{
		{Year: 2019, Value: 90},
		{Year: 2020, Value: 110},
		{Year: 2021, Value: 100},
	}

	fc := Forecast(trend)
	require.True(t, fc.Available)
	assert.Equal(t, 2022, fc.Year)
	// OLS through (2019,90) (2020,110) (2021,100): slope 5, mean at 2020 is 100
	assert.InDelta(t, 110, fc.Value, 1e-6)
}

func TestForecast_UnavailableWithSingleYearGroup(t *testing.T) {
	fc := Forecast([]domain.TrendPoint{{Year: 2020, Value: 100}})
	assert.False(t, fc.Available)
	assert.NotEmpty(t, fc.Reason)
}

func TestForecast_UnavailableWithNoHistory(t *testing.T) {
	fc := Forecast(nil)
	assert.False(t, fc.Available)
}

func TestGrowth_YearOverYear(t *testing.T) {
	g := Growth([]domain.TrendPoint{
		{Year: 2020, Value: 100},
		{Year: 2021, Value: 120},
	})
	require.True(t, g.Defined)
	assert.InDelta(t, 20, g.Value, 1e-9)
}

func TestGrowth_UsesTwoLatestYears(t *testing.T) {
	g := Growth([]domain.TrendPoint{
		{Year: 2021, Value: 110},
		{Year: 2019, Value: 50},
		{Year: 2020, Value: 100},
	})
	require.True(t, g.Defined)
	assert.InDelta(t, 10, g.Value, 1e-9)
}

func TestGrowth_UndefinedWhenPreviousYearIsZero(t *testing.T) {
	g := Growth([]domain.TrendPoint{
		{Year: 2020, Value: 0},
		{Year: 2021, Value: 120},
	})
	assert.False(t, g.Defined)
}

func TestGrowth_UndefinedWithSingleYearGroup(t *testing.T) {
	g := Growth([]domain.TrendPoint{{Year: 2020, Value: 100}})
	assert.False(t, g.Defined)
}

func TestForecast_FromSampleTable(t *testing.T) {
	table, schema := loadSample(t)

	fc := Forecast(YearlyMeans(table, schema, "AQI"))
	require.True(t, fc.Available)
	assert.Equal(t, 2022, fc.Year)
	// yearly means are 126.67 and 153.33, slope +26.67
	assert.InDelta(t, 180, fc.Value, 0.01)
}
