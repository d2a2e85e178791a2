package domain

import (
	"math"
	"time"
)

type ColumnKind string

const (
	KindText    ColumnKind = "text"
	KindNumeric ColumnKind = "numeric"
	KindDate    ColumnKind = "date"
)

// Column is a single typed column of a Table. Text always holds the raw
// cell values; Num and Dates are populated according to Kind, with Valid
// marking non-missing cells.
type Column struct {
	Name    string
	Kind    ColumnKind
	Derived bool
	Text    []string
	Num     []float64
	Dates   []time.Time
	Valid   []bool
}

// Table is an ordered set of columns sharing a row count. The source
// table is loaded once at startup and never mutated; filtering and
// annotation return new Tables.
type Table struct {
	Name    string
	Columns []Column
}

func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Text)
}

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Value returns the numeric value at row i of a numeric column. The
// second result is false for missing cells.
func (c *Column) Value(i int) (float64, bool) {
	if c.Kind != KindNumeric || i >= len(c.Num) || !c.Valid[i] {
		return math.NaN(), false
	}
	return c.Num[i], true
}

// Select returns a new Table containing the given rows, in order,
// preserving the column order and kinds.
func (t *Table) Select(rows []int) *Table {
	out := &Table{Name: t.Name, Columns: make([]Column, len(t.Columns))}
	for ci, c := range t.Columns {
		nc := Column{Name: c.Name, Kind: c.Kind, Derived: c.Derived}
		nc.Text = make([]string, len(rows))
		nc.Valid = make([]bool, len(rows))
		if c.Kind == KindNumeric {
			nc.Num = make([]float64, len(rows))
		}
		if c.Kind == KindDate {
			nc.Dates = make([]time.Time, len(rows))
		}
		for i, r := range rows {
			nc.Text[i] = c.Text[r]
			nc.Valid[i] = c.Valid[r]
			if c.Kind == KindNumeric {
				nc.Num[i] = c.Num[r]
			}
			if c.Kind == KindDate {
				nc.Dates[i] = c.Dates[r]
			}
		}
		out.Columns[ci] = nc
	}
	return out
}
