package domain

// Schema maps logical roles to actual column names of a Table. Empty
// string means the role is absent; dependent features degrade instead of
// failing.
type Schema struct {
	CityColumn     string
	DateColumn     string
	YearColumn     string
	MonthColumn    string
	AQIColumn      string
	LatColumn      string
	LonColumn      string
	CategoryColumn string
	MetricColumns  []string
}

func (s Schema) HasCity() bool     { return s.CityColumn != "" }
func (s Schema) HasYear() bool     { return s.YearColumn != "" }
func (s Schema) HasAQI() bool      { return s.AQIColumn != "" }
func (s Schema) HasLocation() bool { return s.LatColumn != "" && s.LonColumn != "" }

func (s Schema) IsMetric(name string) bool {
	for _, m := range s.MetricColumns {
		if m == name {
			return true
		}
	}
	return false
}
