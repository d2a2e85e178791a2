package analysis

import (
	"sort"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

const insufficientHistory = "need at least two yearly averages"

// Forecast fits an ordinary least-squares line through the yearly means
// and extrapolates one period past the latest observed year. With fewer
// than two year-groups there is nothing to fit and the result is marked
// unavailable.
func Forecast(trend []domain.TrendPoint) domain.ForecastResult {
	if len(trend) < 2 {
		return domain.ForecastResult{Available: false, Reason: insufficientHistory}
	}

	xs := make([]float64, len(trend))
	ys := make([]float64, len(trend))
	maxYear := trend[0].Year
	for i, p := range trend {
		xs[i] = float64(p.Year)
		ys[i] = p.Value
		if p.Year > maxYear {
			maxYear = p.Year
		}
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	target := maxYear + 1
	return domain.ForecastResult{
		Available: true,
		Year:      target,
		Value:     alpha + beta*float64(target),
		Slope:     beta,
		Growth:    Growth(trend),
	}
}

// Growth is the year-over-year percentage change between the two latest
// year-groups. It is undefined with fewer than two groups or when the
// previous year's mean is zero; division by zero is never propagated.
func Growth(trend []domain.TrendPoint) domain.Stat {
	if len(trend) < 2 {
		return domain.Stat{}
	}
	sorted := append([]domain.TrendPoint(nil), trend...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
	latest := sorted[len(sorted)-1]
	previous := sorted[len(sorted)-2]
	if previous.Value == 0 {
		return domain.Stat{}
	}
	return domain.DefinedStat((latest.Value - previous.Value) / previous.Value * 100)
}
