package results

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cablelabs/l4s-wifi-ns3/flowid"
	"github.com/cablelabs/l4s-wifi-ns3/table"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestFileDirection(t *testing.T) {
	assert.Equal(t, Upload, fileDirection("192.168.1.2 101 to 192.168.1.1 443 latency.csv"))
	assert.Equal(t, Download, fileDirection("192.168.1.1 443 to 192.168.1.2 101 latency.csv"))
	// no separator at all still resolves on the presence of the STA address
	assert.Equal(t, Upload, fileDirection("192.168.1.2 101 latency.csv"))
}

func TestAggregateRunLatencyOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "192.168.1.2 101 to 192.168.1.1 443 latency.csv", "Latency\n0.01\n0.03\n")
	writeFile(t, dir, "192.168.1.1 443 to 192.168.1.2 201 latency.csv", "Latency\n0.02\n")
	// unclassifiable port: excluded entirely
	writeFile(t, dir, "192.168.1.2 301 to 192.168.1.1 443 latency.csv", "Latency\n0.5\n")

	cells, err := AggregateRun(dir, 0)
	require.NoError(t, err)

	up := cells[Cell{flowid.Prague, Upload}]
	assert.Equal(t, 20.0, up.Latency.Average)
	assert.Equal(t, 10.0, up.Latency.P0)
	assert.Equal(t, 0.0, up.Bandwidth)
	assert.Equal(t, 0.0, up.CEPercent)

	down := cells[Cell{flowid.Cubic, Download}]
	assert.Equal(t, 20.0, down.Latency.Average)

	// cells with no latency rows carry NaN stats, not zeros
	empty := cells[Cell{flowid.Cubic, Upload}]
	assert.True(t, math.IsNaN(empty.Latency.Average))
	assert.True(t, math.IsNaN(empty.Latency.StdDev))
	assert.Equal(t, 0.0, empty.Bandwidth)
}

func TestAggregateRunSummaryTables(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, upstreamSummary,
		"Flow ID,Mean data rate (Mbps),Num CE,Num Packets\n"+
			"192.168.1.2 101,40,5,10\n"+
			"192.168.1.2 102,10,,\n"+ // counts coerce to 0/1
			"192.168.1.2 201,30,3,100\n")

	cells, err := AggregateRun(dir, 0)
	require.NoError(t, err)

	prague := cells[Cell{flowid.Prague, Upload}]
	assert.Equal(t, 50.0, prague.Bandwidth)
	assert.Equal(t, 50.0, prague.CEPercent) // 5/10*100 + 0/1*100

	cubic := cells[Cell{flowid.Cubic, Upload}]
	assert.Equal(t, 30.0, cubic.Bandwidth)
	assert.Equal(t, 3.0, cubic.CEPercent)

	// downstream table absent: that direction degrades to zero
	assert.Equal(t, 0.0, cells[Cell{flowid.Prague, Download}].Bandwidth)
	assert.Equal(t, 0.0, cells[Cell{flowid.Prague, Download}].CEPercent)
}

func TestAggregateRunSkipsUndecodableLatencyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "192.168.1.2 101 to 192.168.1.1 443 latency.csv", "Latency\n0.01\n")
	// unterminated quote: csv decode fails, file is skipped, run survives
	writeFile(t, dir, "192.168.1.2 102 to 192.168.1.1 443 latency.csv", "Latency\n\"0.5\n")

	cells, err := AggregateRun(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, cells[Cell{flowid.Prague, Upload}].Latency.Average)
}

func TestAggregateRunMissingDirectory(t *testing.T) {
	_, err := AggregateRun(filepath.Join(t.TempDir(), "no-such-run"), 0)
	require.Error(t, err)
}

func TestCollateEndToEnd(t *testing.T) {
	root := t.TempDir()
	for _, run := range []string{"A_1", "B_2"} {
		dir := filepath.Join(root, run)
		require.NoError(t, os.Mkdir(dir, 0755))
		writeFile(t, dir, "192.168.1.2 101 to 192.168.1.1 443 latency.csv", "Latency\n0.01\n")
		writeFile(t, dir, "192.168.1.2 201 to 192.168.1.1 443 latency.csv", "Latency\n0.02\n")
	}
	// a stray file at the root is not a run
	writeFile(t, root, "notes.txt", "ignore me")

	out, err := Collate(root, 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ProcessedResultsFile), out)

	got, err := table.ReadCSV(out)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Label", got.Columns[0])
	for _, row := range got.Rows {
		assert.Equal(t, "10", row.Get("Average Latency UL Prague"))
		assert.Equal(t, "20", row.Get("Average Latency UL Cubic"))
		assert.Equal(t, "0", row.Get("Average Bandwidth UL Prague (Mbps)"))
		assert.Equal(t, "0", row.Get("Average Bandwidth DL Cubic (Mbps)"))
		assert.Equal(t, "0", row.Get("CE % UL Cubic"))
		assert.Equal(t, "0", row.Get("CE % DL Prague"))
		// no DL latency data: empty cells, not zeros
		assert.Equal(t, "", row.Get("Average Latency DL Prague"))
	}
	assert.Equal(t, "A_1", got.Rows[0].Get("Label"))
	assert.Equal(t, "B_2", got.Rows[1].Get("Label"))
}

func TestCollateSkipsBrokenRun(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "MS1-AP1-TC1_good")
	require.NoError(t, os.Mkdir(good, 0755))
	writeFile(t, good, "192.168.1.2 101 to 192.168.1.1 443 latency.csv", "Latency\n0.01\n")
	// a latency source that is listed but cannot be opened is fatal for
	// this run only
	bad := filepath.Join(root, "MS1-AP1-TC2_bad")
	require.NoError(t, os.Mkdir(bad, 0755))
	require.NoError(t, os.Symlink(
		filepath.Join(bad, "gone"),
		filepath.Join(bad, "192.168.1.2 101 to 192.168.1.1 443 latency.csv")))

	out, err := Collate(root, 0)
	require.NoError(t, err)
	got, err := table.ReadCSV(out)
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "MS1-AP1-TC1_good", got.Rows[0].Get("Label"))
}
