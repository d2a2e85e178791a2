package charts

import (
	"fmt"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
)

// Type is a supported chart kind.
type Type string

const (
	Bar       Type = "bar"
	Line      Type = "line"
	Pie       Type = "pie"
	Histogram Type = "histogram"
	Box       Type = "box"
	Scatter   Type = "scatter"
)

// RenderError is a structurally invalid chart configuration. It is a
// presentation-boundary condition: the pipeline state is untouched and
// the caller can retry with a different selection.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render chart: %s", e.Reason)
}

// Request describes the chart the presentation layer wants, bound to the
// current selection's metric and top-N.
type Request struct {
	Type   Type
	Metric string
	TopN   int
}

type ScatterPoint struct {
	Year  int
	City  string
	Value float64
}

type BoxSeries struct {
	City   string
	Values []float64
}

// Spec is a validated chart with its data series, ready for a renderer.
// Exactly one of the series fields is populated, per Type.
type Spec struct {
	Type    Type
	Metric  string
	Labels  []string
	Values  []float64
	Samples []float64
	Boxes   []BoxSeries
	Points  []ScatterPoint
}

// Build validates the request against the table's schema and assembles
// the data series. Failures come back as *RenderError, never a panic.
func Build(t *domain.Table, s domain.Schema, req Request) (*Spec, error) {
	mc, ok := t.Column(req.Metric)
	if !ok {
		return nil, &RenderError{Reason: fmt.Sprintf("metric column %q not found", req.Metric)}
	}
	if mc.Kind != domain.KindNumeric {
		return nil, &RenderError{Reason: fmt.Sprintf("metric column %q is not numeric", req.Metric)}
	}

	spec := &Spec{Type: req.Type, Metric: req.Metric}
	switch req.Type {
	case Bar, Line, Pie:
		if !s.HasCity() {
			return nil, &RenderError{Reason: "city column required for grouped charts"}
		}
		for _, cs := range analysis.TopCities(t, s, req.Metric, analysis.ReduceMean, req.TopN) {
			spec.Labels = append(spec.Labels, cs.City)
			spec.Values = append(spec.Values, cs.Value)
		}
	case Histogram:
		for i := 0; i < t.NumRows(); i++ {
			if v, ok := mc.Value(i); ok {
				spec.Samples = append(spec.Samples, v)
			}
		}
	case Box:
		if !s.HasCity() {
			return nil, &RenderError{Reason: "city column required for box charts"}
		}
		spec.Boxes = boxSeries(t, s, mc)
	case Scatter:
		if !s.HasYear() {
			return nil, &RenderError{Reason: "year column required for scatter charts"}
		}
		spec.Points = scatterPoints(t, s, mc)
	default:
		return nil, &RenderError{Reason: fmt.Sprintf("unknown chart type %q", req.Type)}
	}
	return spec, nil
}

func boxSeries(t *domain.Table, s domain.Schema, mc *domain.Column) []BoxSeries {
	cc, _ := t.Column(s.CityColumn)
	var order []string
	groups := make(map[string][]float64)
	for i := 0; i < t.NumRows(); i++ {
		city := cc.Text[i]
		if city == "" {
			continue
		}
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		if _, seen := groups[city]; !seen {
			order = append(order, city)
		}
		groups[city] = append(groups[city], v)
	}
	out := make([]BoxSeries, 0, len(order))
	for _, city := range order {
		out = append(out, BoxSeries{City: city, Values: groups[city]})
	}
	return out
}

func scatterPoints(t *domain.Table, s domain.Schema, mc *domain.Column) []ScatterPoint {
	yc, _ := t.Column(s.YearColumn)
	var cc *domain.Column
	if s.HasCity() {
		cc, _ = t.Column(s.CityColumn)
	}
	var out []ScatterPoint
	for i := 0; i < t.NumRows(); i++ {
		y, ok := yc.Value(i)
		if !ok {
			continue
		}
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		p := ScatterPoint{Year: int(y), Value: v}
		if cc != nil {
			p.City = cc.Text[i]
		}
		out = append(out, p)
	}
	return out
}
