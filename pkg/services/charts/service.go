package charts

import (
	"context"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
)

// Service builds chart specs against the current selection.
type Service interface {
	Render(ctx context.Context, sel domain.FilterSelection, req Request) (*Spec, error)
}

type chartService struct {
	table  *domain.Table
	schema domain.Schema
}

func NewService(t *domain.Table, s domain.Schema) Service {
	return &chartService{table: t, schema: s}
}

func (c *chartService) Render(_ context.Context, sel domain.FilterSelection, req Request) (*Spec, error) {
	if req.Metric == "" {
		if c.schema.HasAQI() {
			req.Metric = c.schema.AQIColumn
		} else if len(c.schema.MetricColumns) > 0 {
			req.Metric = c.schema.MetricColumns[0]
		}
	}
	ft := analysis.Filter(c.table, c.schema, sel)
	return Build(ft, c.schema, req)
}
