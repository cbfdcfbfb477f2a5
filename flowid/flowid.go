package flowid

import (
	"regexp"
	"strconv"
)

// Category is the congestion control variant driving a measured flow.
type Category int

const (
	None Category = iota
	Cubic
	Prague
)

func (c Category) String() string {
	switch c {
	case Cubic:
		return "cubic"
	case Prague:
		return "prague"
	}
	return "none"
}

// the STA-side address followed by the 3-digit flow port, as it appears in
// latency file names and summary table Flow IDs
var portPattern = regexp.MustCompile(`192\.168\.1\.2\s(\d{3})`)

// Classify maps a flow identifier (a latency file name or a summary table
// Flow ID) to the congestion control variant behind it. Ports 100-199 carry
// Prague traffic, 200-299 carry Cubic. Anything else, including identifiers
// with no recognizable port, is None and excluded from aggregation.
func Classify(id string) Category {
	m := portPattern.FindStringSubmatch(id)
	if m == nil {
		return None
	}
	port, err := strconv.Atoi(m[1])
	if err != nil {
		return None
	}
	switch {
	case port >= 100 && port <= 199:
		return Prague
	case port >= 200 && port <= 299:
		return Cubic
	}
	return None
}
