package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tput.dat")
	require.NoError(t, os.WriteFile(path,
		[]byte("0.1 50\n0.2 60\n\n0.3 70\n"), 0644))

	s, err := readSeries(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, s.times)
	assert.Equal(t, []float64{50, 60, 70}, s.values)

	xys := s.xys()
	require.Len(t, xys, 3)
	assert.Equal(t, 0.2, xys[1].X)
	assert.Equal(t, 60.0, xys[1].Y)
}

func TestReadSeriesBadValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tput.dat")
	require.NoError(t, os.WriteFile(path, []byte("0.1 fifty\n"), 0644))
	_, err := readSeries(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad value")
}

func TestSeriesAverageWindow(t *testing.T) {
	s := series{
		times:  []float64{1, 2, 5, 8, 9},
		values: []float64{100, 10, 20, 30, 100},
	}
	// only 2 <= t <= 8 samples count
	avg, ok := s.average(avgStart, avgEnd)
	require.True(t, ok)
	assert.Equal(t, 20.0, avg)

	_, ok = series{}.average(avgStart, avgEnd)
	assert.False(t, ok)
}

func TestTrimZero(t *testing.T) {
	assert.Equal(t, "93.4", trimZero(93.44))
	assert.Equal(t, "93", trimZero(93.01))
}
