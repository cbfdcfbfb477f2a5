package report

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/cablelabs/l4s-wifi-ns3/results"
	"github.com/cablelabs/l4s-wifi-ns3/table"
)

// Artifacts written into the campaign root, in pipeline order.
const (
	ResultsFile         = "results.csv"
	CalcDetailedFile    = "calc_detailed_results.csv"
	DetailedResultsFile = "detailed_results.csv"
)

// MergeFiles runs the merge stage file-to-file: processed_results.csv plus
// the test case configuration in, results.csv out.
func MergeFiles(root, configPath string) (string, error) {
	res, err := table.ReadCSV(filepath.Join(root, results.ProcessedResultsFile))
	if err != nil {
		return "", fmt.Errorf("merge: %w", err)
	}
	cfg, err := table.ReadCSV(configPath)
	if err != nil {
		return "", fmt.Errorf("merge: config: %w", err)
	}
	merged, err := Merge(res, cfg)
	if err != nil {
		return "", err
	}
	out := filepath.Join(root, ResultsFile)
	if err := merged.WriteCSV(out); err != nil {
		return "", err
	}
	log.Println("Final merged results saved to", out)
	return out, nil
}

// CalcFiles runs the derived-metric stage file-to-file: results.csv in,
// calc_detailed_results.csv out.
func CalcFiles(root string) (string, error) {
	t, err := table.ReadCSV(filepath.Join(root, ResultsFile))
	if err != nil {
		return "", fmt.Errorf("calc: %w", err)
	}
	if err := Calc(t); err != nil {
		return "", err
	}
	out := filepath.Join(root, CalcDetailedFile)
	if err := t.WriteCSV(out); err != nil {
		return "", err
	}
	log.Println("Intermediary calculated metrics saved to", out)
	return out, nil
}

// HideFiles writes the presentation variant of results.csv with the
// internal columns and the caller's extras dropped.
func HideFiles(root string, extra []string) (string, error) {
	t, err := table.ReadCSV(filepath.Join(root, ResultsFile))
	if err != nil {
		return "", fmt.Errorf("hide columns: %w", err)
	}
	out := filepath.Join(root, DetailedResultsFile)
	if err := HideColumns(t, extra).WriteCSV(out); err != nil {
		return "", err
	}
	log.Println("Post processed final merged results saved to", out)
	return out, nil
}

// PivotFiles builds the summary grids from calc_detailed_results.csv and
// writes one labeled CSV per dimension combination into root.
func PivotFiles(root string, cfg Campaigns) ([]string, error) {
	t, err := table.ReadCSV(filepath.Join(root, CalcDetailedFile))
	if err != nil {
		return nil, fmt.Errorf("pivot: %w", err)
	}
	pivots, err := BuildPivots(t, cfg)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, p := range pivots {
		path, err := WritePivot(root, p)
		if err != nil {
			return nil, err
		}
		log.Println("Extended summary csv saved to", path)
		paths = append(paths, path)
	}
	return paths, nil
}
