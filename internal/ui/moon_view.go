package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

const (
	glyphMoonNow = '☾'

	colorMoonNow   = "252"
	colorMoonBelow = "#334155"
)

// Lunar curve ramp: slate at the horizon up to near-white overhead.
var (
	moonColorLow  = [3]uint8{0x47, 0x55, 0x69}
	moonColorMid  = [3]uint8{0x94, 0xA3, 0xB8}
	moonColorHigh = [3]uint8{0xE2, 0xE8, 0xF0}
)

// moonElevColor picks the curve color for a lunar elevation.
func moonElevColor(el float64) lipgloss.Color {
	if el < 0 {
		return colorMoonBelow
	}
	r, g, b := interpolateRamp(moonColorLow, moonColorMid, moonColorHigh, el/90)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// phaseGlyph returns a compact glyph for a lunar phase.
func phaseGlyph(p astro.Phase) rune {
	switch p {
	case astro.NewMoon:
		return '○'
	case astro.WaxingCrescent:
		return '☽'
	case astro.FirstQuarter:
		return '◐'
	case astro.FullMoon:
		return '●'
	case astro.LastQuarter:
		return '◑'
	case astro.WaningCrescent:
		return '☾'
	default: // gibbous either side of full
		return '◕'
	}
}

// MoonViewModel renders the lunar elevation curve and phase figures.
type MoonViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewMoonViewModel creates a new moon view model.
func NewMoonViewModel() MoonViewModel {
	return MoonViewModel{}
}

// Init implements the Bubble Tea model interface.
func (m MoonViewModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m MoonViewModel) SetSize(width, height int) MoonViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m MoonViewModel) UpdateData(snapshot state.Snapshot) MoonViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages. The moon view has no keys of its own.
func (m MoonViewModel) Update(msg tea.Msg) (MoonViewModel, tea.Cmd) {
	return m, nil
}

// View renders the moon view.
func (m MoonViewModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Moon view requires larger terminal"
	}

	r := m.snapshot.Report
	if r == nil {
		if m.snapshot.LastError != nil {
			errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
			return errStyle.Render("Error: " + m.snapshot.LastError.Error())
		}
		return "Computing almanac..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(r))
	b.WriteString("\n\n")

	chartH := m.height - 6
	elevations := make([]float64, len(r.Moon))
	for i, s := range r.Moon {
		elevations[i] = s.ElevationDeg
	}
	b.WriteString(renderElevationChart(elevations, m.width, chartH, moonElevColor, m.moonMarkers(r)))
	b.WriteString("\n\n")
	b.WriteString(m.renderFigures(r))

	return b.String()
}

func (m MoonViewModel) renderHeader(r *almanac.Report) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))

	p := r.Params
	place := p.Name
	if place == "" {
		place = "Observer"
	}

	title := titleStyle.Render("Moon")
	location := accentStyle.Render(fmt.Sprintf("%s %s", place, almanac.FormatLatLon(p.LatDeg, p.LonDeg)))
	date := dimStyle.Render(fmt.Sprintf("%s %s", weekdayName(p.Date), p.Date.String()))
	phase := accentStyle.Render(fmt.Sprintf("%c %s", phaseGlyph(r.Phase), r.Phase.String()))

	return fmt.Sprintf("%s | %s | %s | %s", title, location, date, phase)
}

// moonMarkers builds the moonrise, moonset, peak and current-time
// markers for the elevation chart.
func (m MoonViewModel) moonMarkers(r *almanac.Report) []chartMarker {
	var markers []chartMarker

	if r.MoonTimes.HasRise() {
		markers = append(markers, chartMarker{Minute: int(r.MoonTimes.Rise * 60), Glyph: glyphRise, Color: colorRiseSet})
	}
	if r.MoonTimes.HasSet() {
		markers = append(markers, chartMarker{Minute: int(r.MoonTimes.Set * 60), Glyph: glyphSet, Color: colorRiseSet})
	}
	if r.MoonTimes.MaxElevationDeg > 0 {
		markers = append(markers, chartMarker{Minute: r.MoonTimes.MaxElevationMin, Glyph: glyphNoonPeak, Color: colorPeak})
	}

	if date, minute := astro.ClockAt(time.Now(), r.Params.TZHours); date == r.Params.Date {
		markers = append(markers, chartMarker{Minute: minute, Glyph: glyphMoonNow, Color: colorMoonNow})
	}

	return markers
}

func (m MoonViewModel) renderFigures(r *almanac.Report) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	mt := r.MoonTimes
	var line1 string
	switch {
	case mt.AlwaysUp:
		line1 = valueStyle.Render("Up all day") +
			labelStyle.Render("   Peak ") + valueStyle.Render(fmt.Sprintf("%s @ %.0f°", almanac.FormatClock(float64(mt.MaxElevationMin)/60), mt.MaxElevationDeg))
	case mt.AlwaysDown:
		line1 = valueStyle.Render("Down all day")
	default:
		var parts []string
		if mt.HasRise() {
			parts = append(parts, labelStyle.Render("Rise ")+valueStyle.Render(almanac.FormatClock(mt.Rise)))
		}
		if mt.MaxElevationDeg > 0 {
			parts = append(parts, labelStyle.Render("Peak ")+valueStyle.Render(fmt.Sprintf("%s @ %.0f°", almanac.FormatClock(float64(mt.MaxElevationMin)/60), mt.MaxElevationDeg)))
		}
		if mt.HasSet() {
			parts = append(parts, labelStyle.Render("Set ")+valueStyle.Render(almanac.FormatClock(mt.Set)))
		}
		line1 = strings.Join(parts, "   ")
	}

	line2 := labelStyle.Render("Illumination ") + renderIlluminationBar(r.Illuminated, 10) +
		valueStyle.Render(" "+almanac.FormatPercent(r.Illuminated))

	line3 := dimStyle.Render(fmt.Sprintf("Distance %s · geocentric %s · elongation %.0f°",
		almanac.FormatKm(r.MoonDistanceKm), almanac.FormatKm(r.MoonGeocentricKm), r.ElongationDeg))

	return "  " + line1 + "\n  " + line2 + "\n  " + line3
}

// renderIlluminationBar renders the lit fraction as a bracketed bar.
func renderIlluminationBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	return "[" + style.Render(bar) + "]"
}
