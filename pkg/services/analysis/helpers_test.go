package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/dataset"
)

const sampleCSV = `City,Date,AQI,PM2.5
Delhi,2020-01-05,200,110
Mumbai,2020-02-10,100,55
Chennai,2020-03-15,80,40
Delhi,2021-01-05,240,120
Mumbai,2021-02-10,120,60
Chennai,2021-03-15,100,50
`

func loadTable(t *testing.T, csv string) (*domain.Table, domain.Schema) {
	t.Helper()
	raw, err := dataset.ReadTable(strings.NewReader(csv), "test")
	require.NoError(t, err)
	table, schema, err := dataset.Prepare(raw)
	require.NoError(t, err)
	return table, schema
}

func loadSample(t *testing.T) (*domain.Table, domain.Schema) {
	return loadTable(t, sampleCSV)
}
