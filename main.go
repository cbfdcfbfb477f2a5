// Pipeline driver for L4S WiFi campaign results: collates every test-run
// directory under -path into per-run statistics, merges them with the test
// case configuration, derives the cubic-vs-prague comparison metrics, and
// writes the detailed and per-campaign summary CSVs next to the runs.
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/cablelabs/l4s-wifi-ns3/report"
	"github.com/cablelabs/l4s-wifi-ns3/results"
)

func main() {
	var root, configPath, campaignsPath, hide string
	var digits int
	flag.StringVar(&root, "path", ".", "root directory holding the test-run directories")
	flag.StringVar(&configPath, "config", "config.csv", "test case configuration table")
	flag.StringVar(&campaignsPath, "campaigns", "campaigns.json", "campaign label configuration")
	flag.IntVar(&digits, "digits", 0, "decimal digits for latency statistics")
	flag.StringVar(&hide, "hide", "", "comma-separated extra columns to hide in detailed_results.csv")
	flag.Parse()

	// load the campaign labels up front so a broken setup stops before any
	// artifact is touched
	campaigns, err := report.LoadCampaigns(campaignsPath)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := results.Collate(root, digits); err != nil {
		log.Fatal(err)
	}
	if _, err := report.MergeFiles(root, configPath); err != nil {
		log.Fatal(err)
	}
	if _, err := report.CalcFiles(root); err != nil {
		log.Fatal(err)
	}
	var extra []string
	if hide != "" {
		extra = strings.Split(hide, ",")
	}
	if _, err := report.HideFiles(root, extra); err != nil {
		log.Fatal(err)
	}
	if _, err := report.PivotFiles(root, campaigns); err != nil {
		log.Fatal(err)
	}
	log.Println("Complete")
}
