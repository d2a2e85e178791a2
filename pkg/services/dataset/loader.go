package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aqtools/air-atlas/pkg/models/domain"
	"github.com/aqtools/air-atlas/pkg/services/category"
)

const (
	yearColumnName     = "Year"
	monthColumnName    = "Month"
	categoryColumnName = "Category"
)

// ErrNoNumericColumn is the one startup-fatal condition: a source table
// with no numeric column offers nothing to analyze.
var ErrNoNumericColumn = errors.New("dataset has no numeric column")

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Load reads a CSV file into a typed Table. Column kinds are inferred
// from the values: numeric when every non-empty cell parses as a float,
// date when every non-empty cell parses with a known layout, text
// otherwise.
func Load(path string, name string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadTable(f, name)
}

// ReadTable parses CSV content into a typed Table. Short rows are padded
// with empty cells, long rows truncated to the header width.
func ReadTable(r io.Reader, name string) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %q is empty", name)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	ncol := len(header)
	cells := make([][]string, ncol)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		for i := 0; i < ncol; i++ {
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			cells[i] = append(cells[i], v)
		}
	}

	t := &domain.Table{Name: name, Columns: make([]domain.Column, ncol)}
	for i, h := range header {
		t.Columns[i] = inferColumn(strings.TrimSpace(h), cells[i])
	}
	return t, nil
}

func inferColumn(name string, values []string) domain.Column {
	c := domain.Column{Name: name, Text: values, Valid: make([]bool, len(values))}

	nonEmpty := 0
	numeric := true
	dated := true
	nums := make([]float64, len(values))
	dates := make([]time.Time, len(values))
	for i, v := range values {
		if v == "" {
			nums[i] = math.NaN()
			continue
		}
		nonEmpty++
		if numeric {
			f, err := strconv.ParseFloat(v, 64)
			switch {
			case err != nil:
				numeric = false
			case math.IsNaN(f) || math.IsInf(f, 0):
				// Non-finite literals carry no measurement.
				nums[i] = math.NaN()
			default:
				nums[i] = f
			}
		}
		if dated {
			d, ok := parseDate(v)
			if !ok {
				dated = false
			} else {
				dates[i] = d
			}
		}
	}

	switch {
	case nonEmpty > 0 && numeric:
		c.Kind = domain.KindNumeric
		c.Num = nums
		for i, v := range values {
			c.Valid[i] = v != "" && !math.IsNaN(nums[i])
		}
	case nonEmpty > 0 && dated:
		c.Kind = domain.KindDate
		c.Dates = dates
		for i, v := range values {
			c.Valid[i] = v != ""
		}
	default:
		c.Kind = domain.KindText
		for i, v := range values {
			c.Valid[i] = v != ""
		}
	}
	return c
}

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, v); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// Prepare derives Year/Month from the resolved date column, annotates
// the headline AQI column with severity bands, and returns the final
// schema. It fails only when the table has no numeric column at all.
func Prepare(t *domain.Table) (*domain.Table, domain.Schema, error) {
	s := ResolveSchema(t)

	out := &domain.Table{Name: t.Name, Columns: append([]domain.Column(nil), t.Columns...)}

	if s.DateColumn != "" {
		if dc, ok := out.Column(s.DateColumn); ok && dc.Kind == domain.KindDate {
			if _, exists := out.Column(yearColumnName); !exists {
				out.Columns = append(out.Columns, deriveDatePart(dc, yearColumnName, func(d time.Time) int { return d.Year() }))
			}
			if _, exists := out.Column(monthColumnName); !exists {
				out.Columns = append(out.Columns, deriveDatePart(dc, monthColumnName, func(d time.Time) int { return int(d.Month()) }))
			}
		}
	}

	s = ResolveSchema(out)
	if s.AQIColumn != "" && s.CategoryColumn == "" {
		if mc, ok := out.Column(s.AQIColumn); ok && mc.Kind == domain.KindNumeric {
			out.Columns = append(out.Columns, annotateCategories(mc))
			s = ResolveSchema(out)
		}
	}

	if len(s.MetricColumns) == 0 {
		return nil, domain.Schema{}, ErrNoNumericColumn
	}
	return out, s, nil
}

func deriveDatePart(dc *domain.Column, name string, part func(time.Time) int) domain.Column {
	n := len(dc.Text)
	c := domain.Column{
		Name:    name,
		Kind:    domain.KindNumeric,
		Derived: true,
		Text:    make([]string, n),
		Num:     make([]float64, n),
		Valid:   make([]bool, n),
	}
	for i := 0; i < n; i++ {
		if !dc.Valid[i] {
			c.Num[i] = math.NaN()
			continue
		}
		v := part(dc.Dates[i])
		c.Num[i] = float64(v)
		c.Text[i] = strconv.Itoa(v)
		c.Valid[i] = true
	}
	return c
}

func annotateCategories(mc *domain.Column) domain.Column {
	n := len(mc.Text)
	c := domain.Column{
		Name:    categoryColumnName,
		Kind:    domain.KindText,
		Derived: true,
		Text:    make([]string, n),
		Valid:   make([]bool, n),
	}
	for i := 0; i < n; i++ {
		v, ok := mc.Value(i)
		if !ok {
			continue
		}
		label, ok := category.Classify(v)
		if !ok {
			continue
		}
		c.Text[i] = string(label)
		c.Valid[i] = true
	}
	return c
}
