package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/aqtools/air-atlas/pkg/models/domain"
)

// WriteCSV encodes a table as UTF-8 CSV with a header row, in the
// table's column order (source columns first, derived columns after).
func WriteCSV(w io.Writer, t *domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for i := 0; i < t.NumRows(); i++ {
		for ci := range t.Columns {
			row[ci] = t.Columns[ci].Text[i]
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
