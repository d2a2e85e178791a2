package domain

// Stat is a statistic that may be undefined, e.g. the mean of an empty
// selection or the std of a single value.
type Stat struct {
	Value   float64
	Defined bool
}

func DefinedStat(v float64) Stat { return Stat{Value: v, Defined: true} }

// KPISet holds the headline indicators for the selected metric over the
// filtered table.
type KPISet struct {
	Metric string
	Count  int
	Mean   Stat
	Max    Stat
	Min    Stat
	Std    Stat
}

type CityStat struct {
	City  string
	Value float64
}

// Ranking is the top-N city view plus the extremes over all groups.
type Ranking struct {
	Metric  string
	Entries []CityStat
	Worst   *CityStat
	Best    *CityStat
}

type TrendPoint struct {
	Year  int
	Value float64
}

type HeatmapCell struct {
	Year  int
	City  string
	Value float64
}

type GeoPoint struct {
	City  string
	Lat   float64
	Lon   float64
	Value float64
	Count int
}

// ForecastResult is the one-period-ahead linear extrapolation of yearly
// means. Available is false when fewer than two year-groups exist.
type ForecastResult struct {
	Available bool
	Reason    string
	Year      int
	Value     float64
	Slope     float64
	Growth    Stat
}

type DatasetInfo struct {
	Name    string
	Rows    int
	Columns []ColumnInfo
	Schema  Schema
}

type ColumnInfo struct {
	Name    string
	Kind    ColumnKind
	Derived bool
}
