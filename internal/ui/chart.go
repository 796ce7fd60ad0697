package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	// Curve and axis glyphs
	glyphCurve   = '•'
	glyphHorizon = '─'
	glyphAxis    = '│'
	glyphCross   = '┼'

	// Left margin reserved for elevation labels
	axisWidth = 5
)

// chartMarker pins a glyph to a minute of the day on the curve.
type chartMarker struct {
	Minute int
	Glyph  rune
	Color  lipgloss.Color
}

// chartGrid maps elevation degrees onto canvas rows.
type chartGrid struct {
	lo   float64
	hi   float64
	rows int
}

func (g chartGrid) rowFor(el float64) int {
	if g.hi <= g.lo || g.rows < 2 {
		return 0
	}
	y := int((g.hi-el)/(g.hi-g.lo)*float64(g.rows-1) + 0.5)
	if y < 0 {
		y = 0
	}
	if y >= g.rows {
		y = g.rows - 1
	}
	return y
}

// elevRange returns the plot range for a sample series, padded to the
// nearest 10 degrees and always spanning the horizon.
func elevRange(samples []float64) (lo, hi float64) {
	lo, hi = -10, 10
	for _, el := range samples {
		if math.IsNaN(el) {
			continue
		}
		if f := math.Floor(el/10) * 10; f < lo {
			lo = f
		}
		if c := math.Ceil(el/10) * 10; c > hi {
			hi = c
		}
	}
	return lo, hi
}

// resampleSeries reduces a per-minute series to the given width by
// averaging samples in each bucket.
func resampleSeries(samples []float64, width int) []float64 {
	if len(samples) == 0 || width <= 0 {
		return nil
	}

	result := make([]float64, width)
	samplesPerBucket := float64(len(samples)) / float64(width)

	for i := 0; i < width; i++ {
		startIdx := int(float64(i) * samplesPerBucket)
		endIdx := int(float64(i+1) * samplesPerBucket)
		if endIdx > len(samples) {
			endIdx = len(samples)
		}
		if startIdx >= endIdx {
			startIdx = endIdx - 1
		}
		if startIdx < 0 {
			startIdx = 0
		}

		sum := 0.0
		for j := startIdx; j < endIdx; j++ {
			sum += samples[j]
		}
		result[i] = sum / float64(endIdx-startIdx)
	}

	return result
}

// renderElevationChart draws a per-minute elevation series as a canvas
// chart: elevation on the vertical axis, local time on the horizontal,
// with the horizon as a rule across the plot. colorFor picks the curve
// color for an elevation; markers are drawn on top of the curve.
func renderElevationChart(samples []float64, width, height int, colorFor func(float64) lipgloss.Color, markers []chartMarker) string {
	if len(samples) == 0 || width < axisWidth+12 || height < 6 {
		return ""
	}

	plotW := width - axisWidth
	plotH := height - 1 // bottom row is the hour axis

	series := resampleSeries(samples, plotW)
	lo, hi := elevRange(series)
	grid := chartGrid{lo: lo, hi: hi, rows: plotH}

	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	// Horizon rule across the plot
	horizonY := grid.rowFor(0)
	for x := axisWidth; x < width; x++ {
		canvas[horizonY][x] = glyphHorizon
		colors[horizonY][x] = "60"
	}

	// Left axis rule with elevation labels at top, horizon and bottom
	for y := 0; y < plotH; y++ {
		canvas[y][axisWidth-1] = glyphAxis
		colors[y][axisWidth-1] = "60"
	}
	canvas[horizonY][axisWidth-1] = glyphCross
	drawLabel(canvas, colors, 0, fmt.Sprintf("%3.0f°", hi), "244")
	drawLabel(canvas, colors, horizonY, "  0°", "244")
	drawLabel(canvas, colors, plotH-1, fmt.Sprintf("%3.0f°", lo), "244")

	// Elevation curve
	for x, el := range series {
		y := grid.rowFor(el)
		cx := axisWidth + x
		canvas[y][cx] = glyphCurve
		colors[y][cx] = colorFor(el)
	}

	// Markers override the curve at their minute
	for _, mk := range markers {
		if mk.Minute < 0 || mk.Minute >= len(samples) {
			continue
		}
		x := markerColumn(mk.Minute, plotW, len(samples))
		y := grid.rowFor(series[x])
		canvas[y][axisWidth+x] = mk.Glyph
		colors[y][axisWidth+x] = mk.Color
	}

	// Hour axis along the bottom
	for _, hour := range []int{0, 6, 12, 18} {
		x := axisWidth + markerColumn(hour*60, plotW, len(samples))
		drawLabelAt(canvas, colors, plotH, x, fmt.Sprintf("%02d", hour), "244")
	}
	drawLabelAt(canvas, colors, plotH, width-2, "24", "244")

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// drawLabel writes a label into the left axis margin of a row.
func drawLabel(canvas [][]rune, colors [][]lipgloss.Color, y int, label string, color lipgloss.Color) {
	drawLabelAt(canvas, colors, y, 0, label, color)
}

// drawLabelAt writes a label onto the canvas starting at column x.
func drawLabelAt(canvas [][]rune, colors [][]lipgloss.Color, y, x int, label string, color lipgloss.Color) {
	if y < 0 || y >= len(canvas) {
		return
	}
	for i, r := range label {
		cx := x + i
		if cx < 0 || cx >= len(canvas[y]) {
			continue
		}
		canvas[y][cx] = r
		colors[y][cx] = color
	}
}

// interpolateRamp maps t in [0, 1] onto a low → mid → high color ramp.
func interpolateRamp(low, mid, high [3]uint8, t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	var r, g, b uint8
	if t < 0.5 {
		s := t * 2
		r = uint8(float64(low[0])*(1-s) + float64(mid[0])*s)
		g = uint8(float64(low[1])*(1-s) + float64(mid[1])*s)
		b = uint8(float64(low[2])*(1-s) + float64(mid[2])*s)
	} else {
		s := (t - 0.5) * 2
		r = uint8(float64(mid[0])*(1-s) + float64(high[0])*s)
		g = uint8(float64(mid[1])*(1-s) + float64(high[1])*s)
		b = uint8(float64(mid[2])*(1-s) + float64(high[2])*s)
	}

	return r, g, b
}

// markerColumn returns the plot column a minute of day lands in.
func markerColumn(minute, plotW, total int) int {
	x := minute * plotW / total
	if x >= plotW {
		x = plotW - 1
	}
	if x < 0 {
		x = 0
	}
	return x
}
