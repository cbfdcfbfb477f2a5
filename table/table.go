// Package table holds the flat tabular artifacts the pipeline stages hand
// to each other as CSV files: ordered columns, string cells, and an empty
// cell standing for "no data" (distinct from a real zero).
package table

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Row maps column names to cell values. A missing key and an empty value
// both read back as the empty cell.
type Row map[string]string

func (r Row) Get(col string) string {
	return r[col]
}

func (r Row) Set(col, v string) {
	r[col] = v
}

// Float parses the cell as a number. The second return is false for an
// empty, missing, or non-numeric cell.
func (r Row) Float(col string) (float64, bool) {
	v := strings.TrimSpace(r[col])
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (r Row) Int(col string) (int, bool) {
	v := strings.TrimSpace(r[col])
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetFloat stores v, with NaN and infinities becoming the empty cell.
func (r Row) SetFloat(col string, v float64) {
	r[col] = FormatFloat(v)
}

func (r Row) SetInt(col string, v int) {
	r[col] = strconv.Itoa(v)
}

// FormatFloat renders a cell value. NaN and infinities render as the empty
// cell used for "no data"; finite values use the shortest exact form.
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Table is an ordered set of named columns over rows.
type Table struct {
	Columns []string
	Rows    []Row
}

func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column if not already present. Existing rows read as
// empty cells until assigned.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.Columns[:0]
	for _, c := range t.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for _, r := range t.Rows {
		for n := range drop {
			delete(r, n)
		}
	}
}

// SortBy orders rows by the string value of col, stably.
func (t *Table) SortBy(col string) {
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].Get(col) < t.Rows[j].Get(col)
	})
}

// ReadCSV loads a table from path, first record as the column header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: no header record", path)
	}
	t := New(records[0]...)
	for _, rec := range records[1:] {
		row := Row{}
		for i, v := range rec {
			if i < len(t.Columns) {
				row[t.Columns[i]] = v
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteCSV persists the table to path, cells in column order.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = row.Get(c)
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
