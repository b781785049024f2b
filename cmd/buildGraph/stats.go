package main

import (
	"fmt"
	"sort"
)

// pointStats holds "5%-avg-min", median, and "5%-avg-max" for one x value.
type pointStats struct {
	x      float64 // plotted position, shifted per implementation
	orig   float64 // producers + consumers
	min    float64 // average of the bottom 5%
	median float64
	max    float64 // average of the top 5%
}

// statsPoints implements plotter.XYer and plotter.YErrorer.
type statsPoints []pointStats

func (s statsPoints) Len() int                { return len(s) }
func (s statsPoints) XY(i int) (x, y float64) { return s[i].x, s[i].median }
func (s statsPoints) YError(i int) (low, high float64) {
	return s[i].median - s[i].min, s[i].max - s[i].median
}

// buildStats reduces every x's samples to trimmed min, median and trimmed max,
// sorted by x.
func buildStats(samples map[float64][]float64) statsPoints {
	out := make(statsPoints, 0, len(samples))
	for x, vals := range samples {
		if len(vals) == 0 {
			continue
		}
		sorted := append([]float64(nil), vals...)
		sort.Float64s(sorted)
		out = append(out, pointStats{
			x:      x,
			orig:   x,
			min:    averageOfRange(sorted, 0.0, 0.05),
			median: median(sorted),
			max:    averageOfRange(sorted, 0.95, 1.0),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].orig < out[b].orig })
	return out
}

// averageOfRange returns the average of sorted in [startFrac, endFrac) of its
// length, falling back to the median when that slice is empty.
func averageOfRange(sorted []float64, startFrac, endFrac float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	start := max(int(float64(n)*startFrac), 0)
	end := min(int(float64(n)*endFrac), n)
	if start >= end {
		return median(sorted)
	}
	sum := 0.0
	for _, v := range sorted[start:end] {
		sum += v
	}
	return sum / float64(end-start)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return 0.5 * (sorted[mid-1] + sorted[mid])
}

// formatNs formats a nanoseconds value in ns, µs, ms, or s.
func formatNs(ns float64) string {
	switch {
	case ns < 1e3:
		return fmt.Sprintf("%.0fns", ns)
	case ns < 1e6:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	case ns < 1e9:
		return fmt.Sprintf("%.1fms", ns/1e6)
	default:
		return fmt.Sprintf("%.2fs", ns/1e9)
	}
}
