package report

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/cablelabs/l4s-wifi-ns3/table"
)

// Columns consumed by the comparison: downstream bandwidth and P99 latency
// of each variant, as rendered by the collator.
const (
	colCubicBW   = "Average Bandwidth DL Cubic (Mbps)"
	colPragueBW  = "Average Bandwidth DL Prague (Mbps)"
	colCubicP99  = "P99 Latency DL Cubic"
	colPragueP99 = "P99 Latency DL Prague"
)

// Derived and debug columns added by Calc.
const (
	ColLogRateRatio   = "Log Rate Ratio"
	ColLatencyBenefit = "Latency Benefit"
	ColCalcPragueBW   = "calc_ABW_DL_Prague_Mbps"
	ColCalcCubicBW    = "calc_ABW_DL_Cubic_Mbps"
	ColCalcPragueP99  = "calc_P99_Latency_DL_Prague"
	ColCalcCubicP99   = "calc_P99_Latency_DL_Cubic"
)

var wanDelayPattern = regexp.MustCompile(`(\d+)ms`)

// wanDelayMS parses the configured WAN one-way delay out of a value like
// `"20ms"`.
func wanDelayMS(v string) (float64, error) {
	m := wanDelayPattern.FindStringSubmatch(v)
	if m == nil {
		return 0, fmt.Errorf("wanLinkDelay %q: want \"<int>ms\"", v)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("wanLinkDelay %q: %w", v, err)
	}
	return float64(n), nil
}

// Calc appends the comparison metrics to the merged table, in place.
//
// TC1 runs carry cubic flows only, TC2 prague only, and TC3 and up carry
// both in equal numbers. After sorting by Test Case, the cubic-bearing rows
// (TC1 or TC>2) and the prague-bearing rows (TC>=2) line up pairwise; each
// pair yields Log Rate Ratio = log10(prague BW / cubic BW) and Latency
// Benefit = cubic P99 - prague P99, stored on the prague-bearing row along
// with the raw values used (the calc_ P99 columns net of the WAN delay).
// Unequal subset sizes mean the campaign layout is broken and fail loudly
// rather than misaligning.
func Calc(t *table.Table) error {
	t.SortBy("Test Case")
	for _, c := range []string{
		ColLogRateRatio, ColLatencyBenefit,
		ColCalcPragueBW, ColCalcCubicBW, ColCalcPragueP99, ColCalcCubicP99,
	} {
		t.AddColumn(c)
	}

	var cubicRows, pragueRows []table.Row
	for _, r := range t.Rows {
		tc, ok := r.Int("xTC")
		if !ok {
			continue
		}
		if tc == 1 || tc > 2 {
			cubicRows = append(cubicRows, r)
		}
		if tc >= 2 {
			pragueRows = append(pragueRows, r)
		}
	}
	if len(cubicRows) != len(pragueRows) {
		return fmt.Errorf("calc: %d cubic-bearing rows cannot align with %d prague-bearing rows",
			len(cubicRows), len(pragueRows))
	}

	for i, prague := range pragueRows {
		cubic := cubicRows[i]

		cubicBW := floatOrNaN(cubic, colCubicBW)
		pragueBW := floatOrNaN(prague, colPragueBW)
		ratio := math.Log10(pragueBW / cubicBW)
		if !math.IsInf(ratio, 0) && !math.IsNaN(ratio) {
			prague.SetFloat(ColLogRateRatio, roundTo(ratio, 3))
		}
		prague.SetFloat(ColCalcPragueBW, pragueBW)
		prague.SetFloat(ColCalcCubicBW, cubicBW)

		cubicP99 := floatOrNaN(cubic, colCubicP99)
		pragueP99 := floatOrNaN(prague, colPragueP99)
		prague.SetFloat(ColLatencyBenefit, roundTo(cubicP99-pragueP99, 3))

		delay, err := wanDelayMS(prague.Get("wanLinkDelay"))
		if err != nil {
			return fmt.Errorf("calc: %w", err)
		}
		prague.SetFloat(ColCalcPragueP99, pragueP99-delay)
		prague.SetFloat(ColCalcCubicP99, cubicP99-delay)
	}
	return nil
}

func floatOrNaN(r table.Row, col string) float64 {
	if v, ok := r.Float(col); ok {
		return v
	}
	return math.NaN()
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow10(digits)
	return math.Round(v*p) / p
}
