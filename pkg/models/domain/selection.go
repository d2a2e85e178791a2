package domain

const (
	DefaultTopN = 5
	MaxTopN     = 20
)

// FilterSelection carries the user's intent. Nil Cities/Years means
// "all"; an empty non-nil set means "none" and produces an empty view.
type FilterSelection struct {
	Cities []string
	Years  []int
	Metric string
	TopN   int
}

func (s FilterSelection) CitySet() map[string]bool {
	if s.Cities == nil {
		return nil
	}
	set := make(map[string]bool, len(s.Cities))
	for _, c := range s.Cities {
		set[c] = true
	}
	return set
}

func (s FilterSelection) YearSet() map[int]bool {
	if s.Years == nil {
		return nil
	}
	set := make(map[int]bool, len(s.Years))
	for _, y := range s.Years {
		set[y] = true
	}
	return set
}

// FilterOptions is the set of choices offered to the caller. It is
// always derived from the unfiltered source Table so options never
// shrink as filters are applied.
type FilterOptions struct {
	Cities      []string
	Years       []int
	Metrics     []string
	DefaultTopN int
}
