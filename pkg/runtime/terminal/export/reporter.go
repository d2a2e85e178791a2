package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

// Reporter renders pipeline outputs to the console as formatted text.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

var funcMap = template.FuncMap{
	"stat": func(s domain.Stat) string {
		if !s.Defined {
			return "undefined"
		}
		return fmt.Sprintf("%.2f", s.Value)
	},
	"num": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"inc": func(i int) int { return i + 1 },
}

func (r *Reporter) render(tmpl string, data interface{}) error {
	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, data)
}

func (r *Reporter) Info(info domain.DatasetInfo) error {
	tmpl := `Dataset: {{.Name}} ({{.Rows}} rows)

Columns:
{{range .Columns}}  {{.Name}} [{{.Kind}}]{{if .Derived}} (derived){{end}}
{{end}}
Metrics: {{range $i, $m := .Schema.MetricColumns}}{{if $i}}, {{end}}{{$m}}{{end}}
`
	return r.render(tmpl, info)
}

func (r *Reporter) Summary(k domain.KPISet) error {
	tmpl := `Metric: {{.Metric}} ({{.Count}} readings)

  Average: {{stat .Mean}}
  Maximum: {{stat .Max}}
  Minimum: {{stat .Min}}
  Std Dev: {{stat .Std}}
`
	return r.render(tmpl, k)
}

func (r *Reporter) Ranking(rk domain.Ranking) error {
	tmpl := `Top cities by mean {{.Metric}}:

{{range $i, $e := .Entries}}  {{printf "%2d" (inc $i)}}. {{printf "%-24s" $e.City}} {{num $e.Value}}
{{else}}  (no city groups in selection)
{{end}}{{if .Worst}}
Most polluted: {{.Worst.City}} ({{num .Worst.Value}})
{{end}}{{if .Best}}Least polluted: {{.Best.City}} ({{num .Best.Value}})
{{end}}`
	return r.render(tmpl, rk)
}

func (r *Reporter) Trend(metric string, points []domain.TrendPoint) error {
	tmpl := `Yearly mean {{.Metric}}:

{{range .Points}}  {{.Year}}  {{num .Value}}
{{else}}  (no year groups in selection)
{{end}}`
	return r.render(tmpl, struct {
		Metric string
		Points []domain.TrendPoint
	}{metric, points})
}

func (r *Reporter) Forecast(metric string, fc domain.ForecastResult) error {
	if !fc.Available {
		_, err := fmt.Fprintf(r.writer, "Forecast unavailable: %s\n", fc.Reason)
		return err
	}
	tmpl := `Forecast for {{.Metric}}:

  Predicted {{.FC.Year}} mean: {{num .FC.Value}}
  Trend slope: {{num .FC.Slope}} per year
  Year-over-year change: {{stat .FC.Growth}}{{if .FC.Growth.Defined}}%{{end}}
`
	return r.render(tmpl, struct {
		Metric string
		FC     domain.ForecastResult
	}{metric, fc})
}
