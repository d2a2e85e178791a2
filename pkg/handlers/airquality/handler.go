package airquality

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aqtools/air-atlas/pkg/models/api"
	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
	"github.com/aqtools/air-atlas/pkg/services/charts"
)

type Handler struct {
	explorer analysis.Explorer
	charts   charts.Service
}

func NewHandler(explorer analysis.Explorer, chartSvc charts.Service) *Handler {
	return &Handler{explorer: explorer, charts: chartSvc}
}

// parseSelection reads the filter parameters from the query string.
// Absent cities/years parameters mean "all"; present-but-empty ones mean
// an explicit empty selection.
func parseSelection(r *http.Request) (domain.FilterSelection, error) {
	q := r.URL.Query()
	var sel domain.FilterSelection

	if q.Has("cities") {
		sel.Cities = []string{}
		for _, c := range strings.Split(q.Get("cities"), ",") {
			if c = strings.TrimSpace(c); c != "" {
				sel.Cities = append(sel.Cities, c)
			}
		}
	}
	if q.Has("years") {
		sel.Years = []int{}
		for _, y := range strings.Split(q.Get("years"), ",") {
			y = strings.TrimSpace(y)
			if y == "" {
				continue
			}
			n, err := strconv.Atoi(y)
			if err != nil {
				return sel, fmt.Errorf("invalid year %q", y)
			}
			sel.Years = append(sel.Years, n)
		}
	}
	sel.Metric = q.Get("metric")
	if q.Has("n") {
		n, err := strconv.Atoi(q.Get("n"))
		if err != nil || n < 1 || n > domain.MaxTopN {
			return sel, fmt.Errorf("top-n must be an integer between 1 and %d", domain.MaxTopN)
		}
		sel.TopN = n
	}
	return sel, nil
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: msg})
}

func statPtr(s domain.Stat) *float64 {
	if !s.Defined {
		return nil
	}
	v := s.Value
	return &v
}

func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	info := h.explorer.Describe(ctx)
	resp := api.Dataset{
		Name: info.Name,
		Rows: info.Rows,
		Schema: api.SchemaInfo{
			City:      info.Schema.CityColumn,
			Date:      info.Schema.DateColumn,
			Year:      info.Schema.YearColumn,
			Month:     info.Schema.MonthColumn,
			AQI:       info.Schema.AQIColumn,
			Latitude:  info.Schema.LatColumn,
			Longitude: info.Schema.LonColumn,
			Category:  info.Schema.CategoryColumn,
			Metrics:   info.Schema.MetricColumns,
		},
	}
	for _, c := range info.Columns {
		resp.Columns = append(resp.Columns, api.Column{Name: c.Name, Kind: string(c.Kind), Derived: c.Derived})
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	opts := h.explorer.Options(ctx)
	writeJSON(w, logger, api.FilterOptions{
		Cities:      opts.Cities,
		Years:       opts.Years,
		Metrics:     opts.Metrics,
		DefaultTopN: opts.DefaultTopN,
	})
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kpis, err := h.explorer.Summary(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, logger, api.Summary{
		Metric: kpis.Metric,
		Count:  kpis.Count,
		Mean:   statPtr(kpis.Mean),
		Max:    statPtr(kpis.Max),
		Min:    statPtr(kpis.Min),
		Std:    statPtr(kpis.Std),
	})
}

func (h *Handler) Records(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, labels, err := h.explorer.Records(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := api.Records{
		Columns:    t.ColumnNames(),
		Rows:       make([][]string, 0, t.NumRows()),
		Categories: labels,
		Count:      t.NumRows(),
	}
	for i := 0; i < t.NumRows(); i++ {
		row := make([]string, len(t.Columns))
		for ci := range t.Columns {
			row[ci] = t.Columns[ci].Text[i]
		}
		resp.Rows = append(resp.Rows, row)
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ranking, err := h.explorer.Top(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := api.Ranking{Metric: ranking.Metric, Entries: []api.RankingEntry{}}
	for _, e := range ranking.Entries {
		resp.Entries = append(resp.Entries, api.RankingEntry{City: e.City, Value: e.Value})
	}
	if ranking.Worst != nil {
		resp.Worst = &api.RankingEntry{City: ranking.Worst.City, Value: ranking.Worst.Value}
	}
	if ranking.Best != nil {
		resp.Best = &api.RankingEntry{City: ranking.Best.City, Value: ranking.Best.Value}
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	trend, err := h.explorer.Trend(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := make([]api.TrendPoint, 0, len(trend))
	for _, p := range trend {
		resp = append(resp, api.TrendPoint{Year: p.Year, Value: p.Value})
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fc, err := h.explorer.Forecast(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, logger, api.Forecast{
		Available: fc.Available,
		Reason:    fc.Reason,
		Year:      fc.Year,
		Value:     fc.Value,
		Slope:     fc.Slope,
		GrowthPct: statPtr(fc.Growth),
	})
}

func (h *Handler) Heatmap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cells, err := h.explorer.Heatmap(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := make([]api.HeatmapCell, 0, len(cells))
	for _, c := range cells {
		resp = append(resp, api.HeatmapCell{Year: c.Year, City: c.City, Value: c.Value})
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) Geo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	points, err := h.explorer.Geo(ctx, sel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := make([]api.GeoPoint, 0, len(points))
	for _, p := range points {
		resp = append(resp, api.GeoPoint{City: p.City, Lat: p.Lat, Lon: p.Lon, Value: p.Value, Count: p.Count})
	}
	writeJSON(w, logger, resp)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_data.csv"`)
	if err := h.explorer.ExportCSV(ctx, sel, w); err != nil {
		logger.Error().Err(err).Msg("failed to stream csv export")
	}
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid chart request body")
		return
	}
	sel := domain.FilterSelection{
		Cities: req.Cities,
		Years:  req.Years,
		Metric: req.Metric,
		TopN:   req.TopN,
	}
	spec, err := h.charts.Render(ctx, sel, charts.Request{
		Type:   charts.Type(req.Type),
		Metric: req.Metric,
		TopN:   req.TopN,
	})
	if err != nil {
		var renderErr *charts.RenderError
		if errors.As(err, &renderErr) {
			writeError(w, http.StatusUnprocessableEntity, renderErr.Reason)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := api.Chart{
		Type:    string(spec.Type),
		Metric:  spec.Metric,
		Labels:  spec.Labels,
		Values:  spec.Values,
		Samples: spec.Samples,
	}
	for _, b := range spec.Boxes {
		resp.Boxes = append(resp.Boxes, api.BoxSeries{City: b.City, Values: b.Values})
	}
	for _, p := range spec.Points {
		resp.Points = append(resp.Points, api.ScatterPoint{Year: p.Year, City: p.City, Value: p.Value})
	}
	writeJSON(w, logger, resp)
}
