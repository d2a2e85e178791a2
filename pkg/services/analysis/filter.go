package analysis

import (
	"sort"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

// Filter restricts a table to the rows matching the selection's city and
// year allow-lists. A nil set, or an absent filter column, is a
// pass-through for that dimension. The result is a new derived view; the
// input table is never mutated.
func Filter(t *domain.Table, s domain.Schema, sel domain.FilterSelection) *domain.Table {
	cities := sel.CitySet()
	years := sel.YearSet()

	var cityCol, yearCol *domain.Column
	if cities != nil && s.HasCity() {
		cityCol, _ = t.Column(s.CityColumn)
	}
	if years != nil && s.HasYear() {
		yearCol, _ = t.Column(s.YearColumn)
	}
	if cityCol == nil && yearCol == nil {
		return t
	}

	rows := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		if cityCol != nil && !cities[cityCol.Text[i]] {
			continue
		}
		if yearCol != nil {
			y, ok := yearCol.Value(i)
			if !ok || !years[int(y)] {
				continue
			}
		}
		rows = append(rows, i)
	}
	return t.Select(rows)
}

// Options lists the selectable cities, years and metrics. It must be
// computed from the unfiltered source table so the choices never shrink
// as filters are applied. Cities keep first-seen order; years are
// sorted ascending.
func Options(t *domain.Table, s domain.Schema, defaultTopN int) domain.FilterOptions {
	opts := domain.FilterOptions{
		Metrics:     append([]string(nil), s.MetricColumns...),
		DefaultTopN: defaultTopN,
	}
	if opts.DefaultTopN < 1 || opts.DefaultTopN > domain.MaxTopN {
		opts.DefaultTopN = domain.DefaultTopN
	}

	if s.HasCity() {
		if c, ok := t.Column(s.CityColumn); ok {
			seen := make(map[string]bool)
			for i := 0; i < t.NumRows(); i++ {
				v := c.Text[i]
				if v == "" || seen[v] {
					continue
				}
				seen[v] = true
				opts.Cities = append(opts.Cities, v)
			}
		}
	}

	if s.HasYear() {
		if c, ok := t.Column(s.YearColumn); ok {
			seen := make(map[int]bool)
			for i := 0; i < t.NumRows(); i++ {
				y, ok := c.Value(i)
				if !ok || seen[int(y)] {
					continue
				}
				seen[int(y)] = true
				opts.Years = append(opts.Years, int(y))
			}
			sort.Ints(opts.Years)
		}
	}

	return opts
}
