// Renders the per-run l4s-wifi chart: five stacked panels of the fixed-name
// time series a simulation run leaves behind (wifi throughput, per-variant
// TCP throughput, queue byte counts), each with its steady-state average
// marked. The cubic and prague series are optional; single-variant runs
// leave those panels empty.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

// steady-state window used for the average lines
const (
	avgStart = 2
	avgEnd   = 8
)

type panel struct {
	file        string
	title       string
	yLabel      string
	yMax        float64 // 0 autoscales
	unit        string
	sampleLabel string
	optional    bool
}

var panels = []panel{
	{"wifi-dequeue-throughput.dat", "Wifi throughput", "Throughput (Mbps)", 120, "Mbps", "100ms throughput samples", false},
	{"cubic-throughput.dat", "Cubic throughput", "Throughput (Mbps)", 120, "Mbps", "100ms throughput samples", true},
	{"prague-throughput.dat", "Prague throughput", "Throughput (Mbps)", 120, "Mbps", "100ms throughput samples", true},
	{"wifi-queue-bytes.dat", "Wifi AC_BE queue", "Bytes", 0, "bytes", "100ms queue samples", false},
	{"wifi-dualpi2-bytes.dat", "DualPI2 queue", "Bytes", 0, "bytes", "100ms queue samples", false},
}

func main() {
	var out string
	flag.StringVar(&out, "o", "l4s-wifi.pdf", "output file")
	flag.Parse()
	title := "Untitled"
	if args := flag.Args(); len(args) > 0 {
		title = strings.Join(args, " ")
	}
	if err := render(title, out); err != nil {
		log.Fatal(err)
	}
	log.Println("Plot saved to", out)
}

func render(title, out string) error {
	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		s, err := readSeries(pn.file)
		if err != nil {
			if pn.optional && os.IsNotExist(err) {
				s = series{}
			} else {
				return err
			}
		}
		p, err := panelPlot(pn, s)
		if err != nil {
			return err
		}
		if i == 0 {
			p.Title.Text = title + "\n" + pn.title
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgpdf.New(8*vg.Inch, 11*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadY: vg.Millimeter * 8,
		PadX: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if _, err := img.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	return f.Close()
}

func panelPlot(pn panel, s series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = pn.yLabel
	p.X.Min = 0
	p.Y.Min = 0
	if pn.yMax > 0 {
		p.Y.Max = pn.yMax
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(6)

	if len(s.times) == 0 {
		return p, nil
	}

	l, err := plotter.NewLine(s.xys())
	if err != nil {
		return nil, err
	}
	l.Color = color.Black
	p.Add(l)
	p.Legend.Add(pn.sampleLabel, l)

	if avg, ok := s.average(avgStart, avgEnd); ok {
		al, err := plotter.NewLine(plotter.XYs{
			{X: s.times[0], Y: avg},
			{X: s.times[len(s.times)-1], Y: avg},
		})
		if err != nil {
			return nil, err
		}
		al.Color = color.RGBA{R: 255, A: 255}
		al.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(al)
		p.Legend.Add(fmt.Sprintf("Avg %s %s (2s < t < 8s)",
			trimZero(avg), pn.unit), al)
	}
	return p, nil
}

func trimZero(v float64) string {
	r := math.Round(v*10) / 10
	s := fmt.Sprintf("%.1f", r)
	return strings.TrimSuffix(s, ".0")
}
