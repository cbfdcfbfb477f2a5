package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotter"
)

// series is one time/value trace from a ns-3 .dat file: whitespace
// separated, time in seconds in the first column, sample in the second.
type series struct {
	times  []float64
	values []float64
}

func readSeries(path string) (series, error) {
	f, err := os.Open(path)
	if err != nil {
		return series{}, err
	}
	defer f.Close()

	var s series
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return series{}, fmt.Errorf("%s:%d: bad time %q", path, line, fields[0])
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return series{}, fmt.Errorf("%s:%d: bad value %q", path, line, fields[1])
		}
		s.times = append(s.times, t)
		s.values = append(s.values, v)
	}
	if err := sc.Err(); err != nil {
		return series{}, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

func (s series) xys() plotter.XYs {
	xys := make(plotter.XYs, len(s.times))
	for i := range s.times {
		xys[i].X = s.times[i]
		xys[i].Y = s.values[i]
	}
	return xys
}

// average of the samples in the steady-state window, lo <= t <= hi. The
// second return is false when no sample falls inside the window.
func (s series) average(lo, hi float64) (float64, bool) {
	var sum float64
	var n int
	for i, t := range s.times {
		if t >= lo && t <= hi {
			sum += s.values[i]
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
