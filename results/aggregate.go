// Package results turns one campaign's raw test-run directories into the
// flat per-run results table. Each run directory holds per-flow latency
// CSVs and optional per-direction summary tables written by the simulation;
// the aggregator buckets them by congestion control variant and traffic
// direction and summarizes each bucket.
package results

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/cablelabs/l4s-wifi-ns3/flowid"
	"github.com/cablelabs/l4s-wifi-ns3/table"
)

// Direction of the measured traffic relative to the STA.
type Direction int

const (
	Upload Direction = iota
	Download
)

func (d Direction) String() string {
	if d == Upload {
		return "UL"
	}
	return "DL"
}

// Cell is one aggregation bucket of a run.
type Cell struct {
	Category  flowid.Category
	Direction Direction
}

// Metrics summarizes the flows of one cell.
type Metrics struct {
	Latency   LatencyStats
	Bandwidth float64 // sum of mean data rates, Mbps
	CEPercent float64 // accumulated Num CE / Num Packets ratio, percent
}

// the STA address; a latency file name lists it before " to " for upload
// traffic and after for download
const staAddr = "192.168.1.2"

const (
	upstreamSummary   = "summary_table_upstream.csv"
	downstreamSummary = "summary_table_downstream.csv"
)

var directions = []Direction{Upload, Download}
var categories = []flowid.Category{flowid.Cubic, flowid.Prague}

func summaryFile(d Direction) string {
	if d == Upload {
		return upstreamSummary
	}
	return downstreamSummary
}

func fileDirection(name string) Direction {
	prefix := name
	if i := strings.Index(name, " to "); i >= 0 {
		prefix = name[:i]
	}
	if strings.Contains(prefix, staAddr) {
		return Upload
	}
	return Download
}

// AggregateRun summarizes a single test-run directory into per-cell
// metrics. Latency statistics use the run's "... latency.csv" files;
// bandwidth and CE ratios come from the per-direction summary tables.
// An unreadable latency file is skipped with a diagnostic; an absent
// summary table degrades that direction to zero. A missing run directory
// is an error for this run only.
func AggregateRun(dir string, digits int) (map[Cell]Metrics, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("aggregate run: %w", err)
	}

	samples := make(map[Cell][]float64)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, "latency.csv") {
			continue
		}
		cat := flowid.Classify(name)
		if cat == flowid.None {
			continue
		}
		cell := Cell{cat, fileDirection(name)}
		t, err := table.ReadCSV(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			// a listed primary source that cannot be opened sinks the run
			return nil, fmt.Errorf("aggregate run: missing latency source %s: %w", name, err)
		}
		if err != nil {
			log.Printf("Error decoding file %s: %v", name, err)
			continue
		}
		for _, row := range t.Rows {
			if v, ok := row.Float("Latency"); ok {
				samples[cell] = append(samples[cell], v)
			}
		}
	}

	bandwidth := make(map[Cell]float64)
	cePercent := make(map[Cell]float64)
	for _, d := range directions {
		path := filepath.Join(dir, summaryFile(d))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		t, err := table.ReadCSV(path)
		if err != nil {
			log.Printf("Error reading %s: %v", summaryFile(d), err)
			continue
		}
		for _, cat := range categories {
			cell := Cell{cat, d}
			var rates []float64
			for _, row := range t.Rows {
				if flowid.Classify(row.Get("Flow ID")) != cat {
					continue
				}
				if r, ok := row.Float("Mean data rate (Mbps)"); ok {
					rates = append(rates, r)
				}
				cePercent[cell] += ceRatio(row)
			}
			bandwidth[cell] += floats.Sum(rates)
		}
	}

	cells := make(map[Cell]Metrics)
	for _, d := range directions {
		for _, cat := range categories {
			cell := Cell{cat, d}
			cells[cell] = Metrics{
				Latency:   computeStats(samples[cell], digits),
				Bandwidth: bandwidth[cell],
				CEPercent: cePercent[cell],
			}
		}
	}
	return cells, nil
}

// ceRatio is the row's CE mark percentage. Missing or non-numeric counts
// coerce to 0 marks out of 1 packet, so a bare row contributes 0 rather
// than a division error.
func ceRatio(row table.Row) float64 {
	ce, ok := row.Float("Num CE")
	if !ok {
		ce = 0
	}
	packets, ok := row.Float("Num Packets")
	if !ok {
		packets = 1
	}
	return ce / packets * 100
}
