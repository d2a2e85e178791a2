package api

type Column struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Derived bool   `json:"derived,omitempty"`
}

type SchemaInfo struct {
	City      string   `json:"city,omitempty"`
	Date      string   `json:"date,omitempty"`
	Year      string   `json:"year,omitempty"`
	Month     string   `json:"month,omitempty"`
	AQI       string   `json:"aqi,omitempty"`
	Latitude  string   `json:"latitude,omitempty"`
	Longitude string   `json:"longitude,omitempty"`
	Category  string   `json:"category,omitempty"`
	Metrics   []string `json:"metrics"`
}

type Dataset struct {
	Name    string     `json:"name"`
	Rows    int        `json:"rows"`
	Columns []Column   `json:"columns"`
	Schema  SchemaInfo `json:"schema"`
}

type FilterOptions struct {
	Cities      []string `json:"cities"`
	Years       []int    `json:"years"`
	Metrics     []string `json:"metrics"`
	DefaultTopN int      `json:"default_top_n"`
}

// Summary KPIs. Undefined statistics are null, never NaN.
type Summary struct {
	Metric string   `json:"metric"`
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Max    *float64 `json:"max"`
	Min    *float64 `json:"min"`
	Std    *float64 `json:"std"`
}

type Records struct {
	Columns    []string   `json:"columns"`
	Rows       [][]string `json:"rows"`
	Categories []string   `json:"categories,omitempty"`
	Count      int        `json:"count"`
}

type RankingEntry struct {
	City  string  `json:"city"`
	Value float64 `json:"value"`
}

type Ranking struct {
	Metric  string         `json:"metric"`
	Entries []RankingEntry `json:"entries"`
	Worst   *RankingEntry  `json:"worst,omitempty"`
	Best    *RankingEntry  `json:"best,omitempty"`
}

type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type Forecast struct {
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Year      int      `json:"year,omitempty"`
	Value     float64  `json:"value,omitempty"`
	Slope     float64  `json:"slope,omitempty"`
	GrowthPct *float64 `json:"growth_pct"`
}

type HeatmapCell struct {
	Year  int     `json:"year"`
	City  string  `json:"city"`
	Value float64 `json:"value"`
}

type GeoPoint struct {
	City  string  `json:"city"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

type ChartRequest struct {
	Type   string   `json:"type"`
	Metric string   `json:"metric,omitempty"`
	TopN   int      `json:"top_n,omitempty"`
	Cities []string `json:"cities,omitempty"`
	Years  []int    `json:"years,omitempty"`
}

type ScatterPoint struct {
	Year  int     `json:"year"`
	City  string  `json:"city,omitempty"`
	Value float64 `json:"value"`
}

type BoxSeries struct {
	City   string    `json:"city"`
	Values []float64 `json:"values"`
}

type Chart struct {
	Type    string         `json:"type"`
	Metric  string         `json:"metric"`
	Labels  []string       `json:"labels,omitempty"`
	Values  []float64      `json:"values,omitempty"`
	Samples []float64      `json:"samples,omitempty"`
	Boxes   []BoxSeries    `json:"boxes,omitempty"`
	Points  []ScatterPoint `json:"points,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
