package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/i5heu/GoRingQueue/internal/report"
)

// groupKey identifies one graph: runs with the same GOMAXPROCS and capacity.
type groupKey struct {
	cpus     int
	capacity int
}

// samples maps implementation -> producers+consumers -> ns/msg values.
type samples map[string]map[float64][]float64

// categoryTicks implements a categorical X-axis: 0,1,2,... => labels for concurrency.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// logTicks spaces about one label every 30px over a 648px tall plot.
func logTicks(min, max float64) []plot.Tick {
	const nTicks = 648.0 / 30.0
	if min <= 0 {
		min = 1e-9
	}
	start, end := math.Log10(min), math.Log10(max)
	step := (end - start) / nTicks

	var ticks []plot.Tick
	for i := 0.0; i <= nTicks; i++ {
		y := math.Pow(10, start+i*step)
		ticks = append(ticks, plot.Tick{Value: y, Label: formatNs(y)})
	}
	return ticks
}

func main() {
	app := cli.NewApp()
	app.Name = "buildGraph"
	app.Usage = "Render ns/msg graphs from bench JSON results"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "jsonfile",
			Value: "test-results.json",
			Usage: "Path to JSON file containing test sessions",
		},
		&cli.StringFlag{
			Name:  "out",
			Value: "benchmark_graph",
			Usage: "Output graph image filename prefix",
		},
	}
	app.Action = func(c *cli.Context) error {
		sessions, err := report.Load(c.String("jsonfile"))
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions in %q", c.String("jsonfile"))
		}
		for key, data := range groupSamples(sessions) {
			filename := fmt.Sprintf("%s_cpu%d_cap%d.png", c.String("out"), key.cpus, key.capacity)
			if err := renderGraph(key, data, filename); err != nil {
				log.WithError(err).WithField("file", filename).Error("rendering graph")
				continue
			}
			log.WithFields(log.Fields{"cpus": key.cpus, "capacity": key.capacity, "file": filename}).Info("graph saved")
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("buildGraph failed")
	}
}

// groupSamples buckets every usable result by CPU count and capacity.
func groupSamples(sessions []report.FullReport) map[groupKey]samples {
	out := make(map[groupKey]samples)
	for _, session := range sessions {
		cpus := session.SystemInfo.CPUs()
		for _, b := range session.Benchmarks {
			ns, ok := b.NsPerMsg()
			if !ok {
				continue
			}
			key := groupKey{cpus: cpus, capacity: b.Capacity}
			if out[key] == nil {
				out[key] = make(samples)
			}
			if out[key][b.Implementation] == nil {
				out[key][b.Implementation] = make(map[float64][]float64)
			}
			x := float64(b.NumProducers + b.NumConsumers)
			out[key][b.Implementation][x] = append(out[key][b.Implementation][x], ns)
		}
	}
	return out
}

func renderGraph(key groupKey, data samples, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Time per message (5%%-avg-min / Median / 5%%-avg-max), %d CPU(s), capacity %d", key.cpus, key.capacity)
	p.X.Label.Text = "NumProducers + NumConsumers"
	p.Y.Label.Text = "Time per Msg (ns)"
	p.Y.Tick.Marker = plot.TickerFunc(logTicks)

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white

	p.Add(plotter.NewGrid())

	// Map each concurrency value to a category index.
	concurrencySet := make(map[float64]struct{})
	for _, byX := range data {
		for x := range byX {
			concurrencySet[x] = struct{}{}
		}
	}
	concValues := make([]float64, 0, len(concurrencySet))
	for x := range concurrencySet {
		concValues = append(concValues, x)
	}
	sort.Float64s(concValues)

	category := make(map[float64]float64, len(concValues))
	var ticks categoryTicks
	for i, x := range concValues {
		category[x] = float64(i)
		ticks.positions = append(ticks.positions, float64(i))
		ticks.labels = append(ticks.labels, strconv.FormatFloat(x, 'f', -1, 64))
	}
	p.X.Tick.Marker = ticks

	implNames := make([]string, 0, len(data))
	for name := range data {
		implNames = append(implNames, name)
	}
	sort.Strings(implNames)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Shift implementations apart so their error bars do not overlap.
	const offsetRange = 0.4
	offsetStep := offsetRange / float64(len(implNames))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, name := range implNames {
		pts := buildStats(data[name])
		if len(pts) == 0 {
			continue
		}
		for j := range pts {
			pts[j].x = category[pts[j].orig] + startOffset + float64(i)*offsetStep
		}
		c := colors[i%len(colors)]

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("line for %s: %w", name, err)
		}
		line.Color = c

		points, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter for %s: %w", name, err)
		}
		points.GlyphStyle.Radius = vg.Points(5)
		points.Color = c
		points.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return fmt.Errorf("error bars for %s: %w", name, err)
		}
		yErrBars.Color = c

		p.Add(line, points, yErrBars)
		p.Legend.Add(name, line, points)
	}

	return p.Save(12*vg.Inch, 9*vg.Inch, filename)
}
