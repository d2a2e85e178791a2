package analysis

import (
	"github.com/aqtools/air-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat"
)

// KPIs computes the headline indicators for the selected metric over the
// filtered table. An empty table, or a metric with no defined values,
// yields undefined stats rather than NaN.
func KPIs(t *domain.Table, metric string) domain.KPISet {
	set := domain.KPISet{Metric: metric}
	mc, ok := t.Column(metric)
	if !ok || mc.Kind != domain.KindNumeric {
		return set
	}

	var vals []float64
	for i := 0; i < t.NumRows(); i++ {
		if v, ok := mc.Value(i); ok {
			vals = append(vals, v)
		}
	}
	set.Count = len(vals)
	if len(vals) == 0 {
		return set
	}

	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	set.Mean = domain.DefinedStat(stat.Mean(vals, nil))
	set.Min = domain.DefinedStat(min)
	set.Max = domain.DefinedStat(max)
	if len(vals) > 1 {
		set.Std = domain.DefinedStat(stat.StdDev(vals, nil))
	}
	return set
}
