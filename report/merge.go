// Package report carries the collated results table through the reporting
// stages: merge with the campaign's test-case configuration, derive the
// cubic-vs-prague comparison metrics, and pivot into per-campaign summary
// grids.
package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/cablelabs/l4s-wifi-ns3/table"
)

// ErrMalformedIdentifier reports a test case label token that is not a
// two-letter prefix followed by an integer. The campaign configuration is
// broken; the whole pipeline stops.
var ErrMalformedIdentifier = errors.New("malformed test case identifier")

// DecomposeTestCase splits a compound test case label such as
// "MS1-AP2-TC3-TS1-LS2" into its dimensions: token "TC3" becomes column
// "xTC" with value 3. Returns the dimension names in token order.
func DecomposeTestCase(label string) ([]string, map[string]int, error) {
	names := []string{}
	values := map[string]int{}
	for _, token := range strings.Split(label, "-") {
		if len(token) < 3 || !isLetter(token[0]) || !isLetter(token[1]) {
			return nil, nil, fmt.Errorf("%w: token %q in %q", ErrMalformedIdentifier, token, label)
		}
		n, err := strconv.Atoi(token[2:])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: token %q in %q", ErrMalformedIdentifier, token, label)
		}
		name := "x" + token[:2]
		if _, dup := values[name]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate dimension %q in %q", ErrMalformedIdentifier, name, label)
		}
		names = append(names, name)
		values[name] = n
	}
	return names, values, nil
}

func isLetter(b byte) bool {
	return unicode.IsLetter(rune(b))
}

// testCaseMatch is the join key derived from a run label: the leading token
// up to the first underscore.
func testCaseMatch(label string) string {
	if i := strings.Index(label, "_"); i >= 0 {
		return label[:i]
	}
	return label
}

func linkText(label string) string {
	return fmt.Sprintf("link:./%s[%s]/", label, label)
}

// Merge left-joins the collated results against the test case configuration
// on the derived match key, decomposes each matched row's compound label
// into dimension columns, and replaces the Label with its link text. Every
// results row is preserved; unmatched rows keep empty config cells. Output
// column order: Label, Test Case, config columns, remaining result columns,
// dimensions, link.
func Merge(results, config *table.Table) (*table.Table, error) {
	byTestCase := make(map[string]table.Row, len(config.Rows))
	for _, r := range config.Rows {
		byTestCase[r.Get("Test Case")] = r
	}

	var cfgCols []string
	for _, c := range config.Columns {
		if c != "Test Case" {
			cfgCols = append(cfgCols, c)
		}
	}
	var resCols []string
	for _, c := range results.Columns {
		if c != "Label" {
			resCols = append(resCols, c)
		}
	}

	var dimCols []string
	seenDim := map[string]bool{}
	rows := make([]table.Row, 0, len(results.Rows))
	for _, r := range results.Rows {
		out := table.Row{}
		for _, c := range resCols {
			out.Set(c, r.Get(c))
		}
		label := r.Get("Label")
		if cfg, ok := byTestCase[testCaseMatch(label)]; ok {
			for _, c := range config.Columns {
				out.Set(c, cfg.Get(c))
			}
			names, values, err := DecomposeTestCase(cfg.Get("Test Case"))
			if err != nil {
				return nil, err
			}
			for _, n := range names {
				if !seenDim[n] {
					seenDim[n] = true
					dimCols = append(dimCols, n)
				}
				out.SetInt(n, values[n])
			}
		}
		link := linkText(label)
		out.Set("Label", link)
		out.Set("link", link)
		rows = append(rows, out)
	}

	cols := append([]string{"Label", "Test Case"}, cfgCols...)
	cols = append(cols, resCols...)
	cols = append(cols, dimCols...)
	cols = append(cols, "link")
	merged := table.New(cols...)
	merged.Rows = rows
	merged.SortBy("Test Case")
	return merged, nil
}
