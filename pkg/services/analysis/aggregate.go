package analysis

import (
	"fmt"
	"sort"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// Reduction names the operator applied to each group's metric values.
type Reduction string

const (
	ReduceMean  Reduction = "mean"
	ReduceMin   Reduction = "min"
	ReduceMax   Reduction = "max"
	ReduceStd   Reduction = "std"
	ReduceCount Reduction = "count"
)

func ParseReduction(s string) (Reduction, error) {
	switch Reduction(s) {
	case ReduceMean, ReduceMin, ReduceMax, ReduceStd, ReduceCount:
		return Reduction(s), nil
	case "":
		return ReduceMean, nil
	}
	return "", fmt.Errorf("unknown reduction %q", s)
}

func reduce(vals []float64, op Reduction) (float64, bool) {
	if op == ReduceCount {
		return float64(len(vals)), true
	}
	if len(vals) == 0 {
		return 0, false
	}
	switch op {
	case ReduceMean:
		return stat.Mean(vals, nil), true
	case ReduceMin:
		min := vals[0]
		for _, v := range vals[1:] {
			if v < min {
				min = v
			}
		}
		return min, true
	case ReduceMax:
		max := vals[0]
		for _, v := range vals[1:] {
			if v > max {
				max = v
			}
		}
		return max, true
	case ReduceStd:
		if len(vals) < 2 {
			return 0, false
		}
		return stat.StdDev(vals, nil), true
	}
	return 0, false
}

// groupBy collects the valid metric values per group key, keeping keys
// in first-seen row order. Rows with a missing key or missing metric
// value are skipped.
func groupBy(t *domain.Table, metric string, key func(i int) (string, bool)) ([]string, map[string][]float64) {
	mc, ok := t.Column(metric)
	if !ok {
		return nil, nil
	}
	var order []string
	groups := make(map[string][]float64)
	for i := 0; i < t.NumRows(); i++ {
		k, ok := key(i)
		if !ok {
			continue
		}
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], v)
	}
	return order, groups
}

// CityStats reduces the metric per city, in first-seen city order.
// Groups whose reduction is undefined are dropped.
func CityStats(t *domain.Table, s domain.Schema, metric string, op Reduction) []domain.CityStat {
	if !s.HasCity() {
		return nil
	}
	cc, ok := t.Column(s.CityColumn)
	if !ok {
		return nil
	}
	order, groups := groupBy(t, metric, func(i int) (string, bool) {
		v := cc.Text[i]
		return v, v != ""
	})
	out := make([]domain.CityStat, 0, len(order))
	for _, city := range order {
		if v, ok := reduce(groups[city], op); ok {
			out = append(out, domain.CityStat{City: city, Value: v})
		}
	}
	return out
}

// TopCities ranks cities by reduced value descending (most polluted
// first) and truncates to n. The sort is stable, so ties keep the
// original first-seen order and repeated runs produce identical output.
func TopCities(t *domain.Table, s domain.Schema, metric string, op Reduction, n int) []domain.CityStat {
	if n < 1 || n > domain.MaxTopN {
		n = domain.DefaultTopN
	}
	stats := CityStats(t, s, metric, op)
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Value > stats[j].Value })
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// WorstBest returns the argmax and argmin cities of the per-city mean.
// Ties resolve to the earlier city in first-seen order.
func WorstBest(t *domain.Table, s domain.Schema, metric string) (worst, best *domain.CityStat) {
	stats := CityStats(t, s, metric, ReduceMean)
	for i := range stats {
		if worst == nil || stats[i].Value > worst.Value {
			worst = &stats[i]
		}
		if best == nil || stats[i].Value < best.Value {
			best = &stats[i]
		}
	}
	return worst, best
}

// YearlyMeans computes the mean metric per year-group, sorted by year
// ascending. This is the input series for trend display and the
// forecaster.
func YearlyMeans(t *domain.Table, s domain.Schema, metric string) []domain.TrendPoint {
	if !s.HasYear() {
		return nil
	}
	yc, ok := t.Column(s.YearColumn)
	if !ok {
		return nil
	}
	mc, ok := t.Column(metric)
	if !ok {
		return nil
	}

	var years []int
	groups := make(map[int][]float64)
	for i := 0; i < t.NumRows(); i++ {
		y, ok := yc.Value(i)
		if !ok {
			continue
		}
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		yr := int(y)
		if _, seen := groups[yr]; !seen {
			years = append(years, yr)
		}
		groups[yr] = append(groups[yr], v)
	}
	sort.Ints(years)

	out := make([]domain.TrendPoint, 0, len(years))
	for _, yr := range years {
		out = append(out, domain.TrendPoint{Year: yr, Value: stat.Mean(groups[yr], nil)})
	}
	return out
}

// YearCityMeans computes the mean metric per (year, city) pair for
// heatmap consumption, years ascending and cities in first-seen order
// within each year.
func YearCityMeans(t *domain.Table, s domain.Schema, metric string) []domain.HeatmapCell {
	if !s.HasYear() || !s.HasCity() {
		return nil
	}
	yc, _ := t.Column(s.YearColumn)
	cc, _ := t.Column(s.CityColumn)
	mc, ok := t.Column(metric)
	if !ok {
		return nil
	}

	type yearCity struct {
		year int
		city string
	}
	var order []yearCity
	groups := make(map[yearCity][]float64)
	for i := 0; i < t.NumRows(); i++ {
		y, ok := yc.Value(i)
		if !ok || cc.Text[i] == "" {
			continue
		}
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		k := yearCity{year: int(y), city: cc.Text[i]}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], v)
	}

	out := make([]domain.HeatmapCell, 0, len(order))
	for _, k := range order {
		out = append(out, domain.HeatmapCell{
			Year:  k.year,
			City:  k.city,
			Value: stat.Mean(groups[k], nil),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// LocationMeans computes the mean metric per unique (city, lat, lon)
// location for map display.
func LocationMeans(t *domain.Table, s domain.Schema, metric string) []domain.GeoPoint {
	if !s.HasCity() || !s.HasLocation() {
		return nil
	}
	cc, _ := t.Column(s.CityColumn)
	latc, ok := t.Column(s.LatColumn)
	if !ok || latc.Kind != domain.KindNumeric {
		return nil
	}
	lonc, ok := t.Column(s.LonColumn)
	if !ok || lonc.Kind != domain.KindNumeric {
		return nil
	}

	type loc struct {
		city     string
		lat, lon float64
	}
	var order []loc
	groups := make(map[loc][]float64)
	mc, ok := t.Column(metric)
	if !ok {
		return nil
	}
	for i := 0; i < t.NumRows(); i++ {
		lat, latOK := latc.Value(i)
		lon, lonOK := lonc.Value(i)
		if cc.Text[i] == "" || !latOK || !lonOK {
			continue
		}
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		k := loc{city: cc.Text[i], lat: lat, lon: lon}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], v)
	}

	out := make([]domain.GeoPoint, 0, len(order))
	for _, k := range order {
		vals := groups[k]
		out = append(out, domain.GeoPoint{
			City:  k.city,
			Lat:   k.lat,
			Lon:   k.lon,
			Value: stat.Mean(vals, nil),
			Count: len(vals),
		})
	}
	return out
}
