package dataset

import (
	"strings"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

var (
	citySynonyms = map[string]bool{"city": true, "city_name": true, "cityname": true}
	dateSynonyms = map[string]bool{"date": true}
	latSynonyms  = map[string]bool{"latitude": true, "lat": true}
	lonSynonyms  = map[string]bool{"longitude": true, "lon": true, "lng": true}
)

const aqiColumnName = "aqi"

// normalizeName folds a header cell into its canonical lookup form:
// trimmed, lower-cased, internal spaces replaced with underscores.
func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "_")
}

// ResolveSchema identifies the city, date, headline-AQI and coordinate
// columns of a table by normalized name, and collects the numeric
// columns eligible as metrics. Missing optional roles stay empty; the
// dependent features degrade rather than fail.
func ResolveSchema(t *domain.Table) domain.Schema {
	var s domain.Schema
	for _, c := range t.Columns {
		n := normalizeName(c.Name)
		switch {
		case citySynonyms[n] && s.CityColumn == "":
			s.CityColumn = c.Name
		case dateSynonyms[n] && s.DateColumn == "":
			s.DateColumn = c.Name
		case latSynonyms[n] && s.LatColumn == "":
			s.LatColumn = c.Name
		case lonSynonyms[n] && s.LonColumn == "":
			s.LonColumn = c.Name
		}
		if n == aqiColumnName && s.AQIColumn == "" {
			s.AQIColumn = c.Name
		}
		if c.Kind == domain.KindNumeric {
			s.MetricColumns = append(s.MetricColumns, c.Name)
		}
		switch c.Name {
		case yearColumnName:
			s.YearColumn = c.Name
		case monthColumnName:
			s.MonthColumn = c.Name
		case categoryColumnName:
			s.CategoryColumn = c.Name
		}
	}
	return s
}
