package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/cablelabs/l4s-wifi-ns3/table"
)

// The summary grids cross-tabulate traffic scenario (rows) against test
// case type (columns); every other dimension combination gets its own grid.
const (
	pivotRowDim = "xTS"
	pivotColDim = "xTC"
)

// Pivot is one cross-tabulated summary grid.
type Pivot struct {
	Name      string // output file name, from the group's human labels
	RowLabels []string
	ColLabels []string
	Cells     [][]string
}

type pivotEntry struct {
	order []string
	dims  map[string]int
	lrr   float64
	lb    float64
	// raw values behind the two metrics, for the cell text
	pragueBW, cubicBW float64
	praguePL, cubicPL float64
}

// cellText renders one grid cell: the signed log rate ratio with the two
// bandwidths behind it, then the latency benefit with the two net P99s.
func (e pivotEntry) cellText() string {
	return fmt.Sprintf("%+.1f [a: %.0fM, b: %.0fM] +\n%.0fms [a: %.0fms, b: %.0fms]",
		e.lrr, e.pragueBW, e.cubicBW, e.lb, e.praguePL, e.cubicPL)
}

// BuildPivots groups the calculated table's valid rows (column dimension
// past the baseline, both derived metrics present) by every dimension other
// than the two pivot dimensions and builds one grid per group. Cell [r][c]
// holds the row with row-dimension value r+1 and column-dimension value
// c+2; the offset reflects the baseline column value 1 having no grid
// column of its own. Untouched cells stay "0".
func BuildPivots(t *table.Table, cfg Campaigns) ([]Pivot, error) {
	var entries []pivotEntry
	for _, r := range t.Rows {
		lrr, okRatio := r.Float(ColLogRateRatio)
		lb, okBenefit := r.Float(ColLatencyBenefit)
		if !okRatio || !okBenefit {
			continue
		}
		label := r.Get("Test Case")
		if label == "" {
			continue
		}
		order, dims, err := DecomposeTestCase(label)
		if err != nil {
			return nil, err
		}
		for _, d := range []string{pivotRowDim, pivotColDim} {
			if _, ok := dims[d]; !ok {
				return nil, fmt.Errorf("pivot: test case %q lacks dimension %s", label, d)
			}
		}
		if dims[pivotColDim] <= 1 {
			continue
		}
		entries = append(entries, pivotEntry{
			order:    order,
			dims:     dims,
			lrr:      lrr,
			lb:       lb,
			pragueBW: floatOrNaN(r, ColCalcPragueBW),
			cubicBW:  floatOrNaN(r, ColCalcCubicBW),
			praguePL: floatOrNaN(r, ColCalcPragueP99),
			cubicPL:  floatOrNaN(r, ColCalcCubicP99),
		})
	}
	if len(entries) == 0 {
		return nil, nil
	}

	var groupDims []string
	for _, d := range entries[0].order {
		if d != pivotRowDim && d != pivotColDim {
			groupDims = append(groupDims, d)
		}
	}
	numRows := distinctValues(entries, pivotRowDim)
	numCols := distinctValues(entries, pivotColDim)

	grids := make(map[string][][]string)
	groupValues := make(map[string][]int)
	for _, e := range entries {
		vals := make([]int, len(groupDims))
		parts := make([]string, len(groupDims))
		for i, d := range groupDims {
			vals[i] = e.dims[d]
			parts[i] = strconv.Itoa(e.dims[d])
		}
		key := strings.Join(parts, "-")
		grid, ok := grids[key]
		if !ok {
			grid = zeroGrid(numRows, numCols)
			grids[key] = grid
			groupValues[key] = vals
		}
		ri := e.dims[pivotRowDim] - 1
		ci := e.dims[pivotColDim] - 2
		if ri < 0 || ri >= numRows || ci < 0 || ci >= numCols {
			return nil, fmt.Errorf("pivot: dimension values %s=%d %s=%d out of range for a %dx%d grid",
				pivotRowDim, e.dims[pivotRowDim], pivotColDim, e.dims[pivotColDim], numRows, numCols)
		}
		grid[ri][ci] = e.cellText()
	}

	rowLabels := make([]string, numRows)
	for i := range rowLabels {
		l, err := cfg.Label(pivotRowDim[1:], i+1)
		if err != nil {
			return nil, err
		}
		rowLabels[i] = l
	}
	colLabels := make([]string, numCols)
	for i := range colLabels {
		l, err := cfg.Label(pivotColDim[1:], i+2)
		if err != nil {
			return nil, err
		}
		colLabels[i] = l
	}

	keys := maps.Keys(grids)
	sort.Strings(keys)
	pivots := make([]Pivot, 0, len(keys))
	for _, key := range keys {
		var parts []string
		for i, d := range groupDims {
			l, err := cfg.Label(d[1:], groupValues[key][i])
			if err != nil {
				return nil, err
			}
			parts = append(parts, l)
		}
		pivots = append(pivots, Pivot{
			Name:      strings.Join(parts, "_") + ".csv",
			RowLabels: rowLabels,
			ColLabels: colLabels,
			Cells:     grids[key],
		})
	}
	return pivots, nil
}

func distinctValues(entries []pivotEntry, dim string) int {
	seen := map[int]bool{}
	for _, e := range entries {
		seen[e.dims[dim]] = true
	}
	return len(seen)
}

func zeroGrid(rows, cols int) [][]string {
	g := make([][]string, rows)
	for i := range g {
		g[i] = make([]string, cols)
		for j := range g[i] {
			g[i][j] = "0"
		}
	}
	return g
}

// WritePivot persists one grid as a labeled CSV under dir and returns its
// path.
func WritePivot(dir string, p Pivot) (string, error) {
	path := filepath.Join(dir, p.Name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	w := csv.NewWriter(f)
	if err := w.Write(append([]string{""}, p.ColLabels...)); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	for i, row := range p.Cells {
		if err := w.Write(append([]string{p.RowLabels[i]}, row...)); err != nil {
			f.Close()
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, f.Close()
}
