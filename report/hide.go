package report

import "github.com/cablelabs/l4s-wifi-ns3/table"

// internal and debug columns never shown in the detailed results
var hiddenByDefault = []string{
	"Test Case Match",
	"xMS", "xAP", "xTC", "xTS", "xLS",
	ColCalcPragueBW, ColCalcCubicBW, ColCalcPragueP99, ColCalcCubicP99,
}

// HideColumns returns a copy of t sorted by Test Case with the default
// hidden columns plus the caller's extras removed. Names not present are
// ignored.
func HideColumns(t *table.Table, extra []string) *table.Table {
	out := table.New(t.Columns...)
	for _, r := range t.Rows {
		cp := table.Row{}
		for k, v := range r {
			cp[k] = v
		}
		out.Append(cp)
	}
	out.SortBy("Test Case")
	out.DropColumns(append(append([]string{}, hiddenByDefault...), extra...)...)
	return out
}
