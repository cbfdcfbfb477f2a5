package results

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/cablelabs/l4s-wifi-ns3/flowid"
	"github.com/cablelabs/l4s-wifi-ns3/table"
)

// ProcessedResultsFile is the collated per-run results artifact, written
// into the campaign root directory.
const ProcessedResultsFile = "processed_results.csv"

func displayName(c flowid.Category) string {
	if c == flowid.Prague {
		return "Prague"
	}
	return "Cubic"
}

// cellColumns renders the display column names of one cell, in artifact
// order. Column names exist only at this serialization boundary; everything
// upstream keys on Cell values.
func cellColumns(cell Cell) []string {
	cols := make([]string, 0, len(latencyStatNames)+2)
	for _, stem := range latencyStatNames {
		cols = append(cols, fmt.Sprintf("%s %s %s", stem, cell.Direction, displayName(cell.Category)))
	}
	cols = append(cols,
		fmt.Sprintf("Average Bandwidth %s %s (Mbps)", cell.Direction, displayName(cell.Category)),
		fmt.Sprintf("CE %% %s %s", cell.Direction, displayName(cell.Category)))
	return cols
}

func resultColumns() []string {
	cols := []string{"Label"}
	for _, d := range directions {
		for _, cat := range categories {
			cols = append(cols, cellColumns(Cell{cat, d})...)
		}
	}
	return cols
}

func renderRow(label string, cells map[Cell]Metrics) table.Row {
	row := table.Row{"Label": label}
	for _, d := range directions {
		for _, cat := range categories {
			cell := Cell{cat, d}
			m := cells[cell]
			cols := cellColumns(cell)
			for i, v := range m.Latency.values() {
				row.SetFloat(cols[i], v)
			}
			row.SetFloat(cols[len(cols)-2], math.Round(m.Bandwidth))
			row.SetFloat(cols[len(cols)-1], m.CEPercent)
		}
	}
	return row
}

// Collate aggregates every immediate subdirectory of root into one results
// row and writes the collated table to processed_results.csv under root.
// A run whose aggregation fails is logged and skipped; the remaining runs
// still collate.
func Collate(root string, digits int) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("collate: %w", err)
	}
	t := table.New(resultColumns()...)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cells, err := AggregateRun(filepath.Join(root, e.Name()), digits)
		if err != nil {
			log.Printf("Skipping run %s: %v", e.Name(), err)
			continue
		}
		t.Append(renderRow(e.Name(), cells))
	}
	out := filepath.Join(root, ProcessedResultsFile)
	if err := t.WriteCSV(out); err != nil {
		return "", err
	}
	log.Println("Combined results saved to", out)
	return out, nil
}
