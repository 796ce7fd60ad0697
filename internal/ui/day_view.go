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
	// Day view glyphs
	glyphSunNow   = '☀'
	glyphNoonPeak = '◆'
	glyphRise     = '↑'
	glyphSet      = '↓'

	// Marker colors
	colorSunNow  = "229" // bright gold
	colorRiseSet = "#F59E0B"
	colorPeak    = "#FDE047"

	// Twilight bands below the horizon
	colorTwilightCivil    = "#6D28D9"
	colorTwilightNautical = "#4C1D95"
	colorTwilightAstro    = "#372F6B"
	colorNight            = "#1E1B3A"
)

// Daylight curve ramp: horizon amber up to noon gold.
var (
	sunColorLow  = [3]uint8{0xC2, 0x41, 0x0C}
	sunColorMid  = [3]uint8{0xF5, 0x9E, 0x0B}
	sunColorHigh = [3]uint8{0xFD, 0xE0, 0x47}
)

// sunElevColor picks the curve color for a solar elevation. Above the
// horizon the color follows the daylight ramp; below it the twilight
// bands at -6, -12 and -18 degrees.
func sunElevColor(el float64) lipgloss.Color {
	switch {
	case el >= 0:
		r, g, b := interpolateRamp(sunColorLow, sunColorMid, sunColorHigh, el/90)
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	case el >= -6:
		return colorTwilightCivil
	case el >= -12:
		return colorTwilightNautical
	case el >= -18:
		return colorTwilightAstro
	default:
		return colorNight
	}
}

// DayViewModel renders the solar elevation curve for one day.
type DayViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
}

// NewDayViewModel creates a new day view model.
func NewDayViewModel() DayViewModel {
	return DayViewModel{}
}

// Init implements the Bubble Tea model interface.
func (m DayViewModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m DayViewModel) SetSize(width, height int) DayViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m DayViewModel) UpdateData(snapshot state.Snapshot) DayViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages. The day view has no keys of its own.
func (m DayViewModel) Update(msg tea.Msg) (DayViewModel, tea.Cmd) {
	return m, nil
}

// View renders the day view.
func (m DayViewModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Day view requires larger terminal"
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

	chartH := m.height - 5
	b.WriteString(renderElevationChart(r.SolarElevations, m.width, chartH, sunElevColor, m.dayMarkers(r)))
	b.WriteString("\n\n")
	b.WriteString(m.renderStats(r))

	return b.String()
}

func (m DayViewModel) renderHeader(r *almanac.Report) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))

	p := r.Params
	place := p.Name
	if place == "" {
		place = "Observer"
	}

	title := titleStyle.Render("Sun")
	location := accentStyle.Render(fmt.Sprintf("%s %s", place, almanac.FormatLatLon(p.LatDeg, p.LonDeg)))
	date := dimStyle.Render(fmt.Sprintf("%s %s (day %d)", weekdayName(p.Date), p.Date.String(), p.Date.DayOfYear()))

	return fmt.Sprintf("%s | %s | %s", title, location, date)
}

// dayMarkers builds the sunrise, sunset, noon peak and current-time
// markers for the elevation chart.
func (m DayViewModel) dayMarkers(r *almanac.Report) []chartMarker {
	var markers []chartMarker

	if r.Daylight.HasRiseSet() {
		markers = append(markers,
			chartMarker{Minute: int(r.Daylight.SunriseHours * 60), Glyph: glyphRise, Color: colorRiseSet},
			chartMarker{Minute: int(r.Daylight.SunsetHours * 60), Glyph: glyphSet, Color: colorRiseSet},
		)
	}

	markers = append(markers, chartMarker{Minute: r.MaxElevationMin, Glyph: glyphNoonPeak, Color: colorPeak})

	if date, minute := astro.ClockAt(time.Now(), r.Params.TZHours); date == r.Params.Date {
		markers = append(markers, chartMarker{Minute: minute, Glyph: glyphSunNow, Color: colorSunNow})
	}

	return markers
}

func (m DayViewModel) renderStats(r *almanac.Report) string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var line1 string
	switch r.Daylight.Kind {
	case astro.DaylightPolarDay:
		line1 = valueStyle.Render("Polar day") + dimStyle.Render(" · the sun never sets · ") +
			labelStyle.Render("Length ") + valueStyle.Render("24h 00m")
	case astro.DaylightPolarNight:
		line1 = valueStyle.Render("Polar night") + dimStyle.Render(" · the sun never rises · ") +
			labelStyle.Render("Length ") + valueStyle.Render("0h 00m")
	default:
		line1 = labelStyle.Render("Rise ") + valueStyle.Render(almanac.FormatClock(r.Daylight.SunriseHours)) +
			labelStyle.Render("   Noon ") + valueStyle.Render(fmt.Sprintf("%s @ %.1f°", almanac.FormatClock(r.SolarNoon), r.MaxElevationDeg)) +
			labelStyle.Render("   Set ") + valueStyle.Render(almanac.FormatClock(r.Daylight.SunsetHours)) +
			labelStyle.Render("   Length ") + valueStyle.Render(almanac.FormatDuration(r.Daylight.DayLengthHrs))
	}

	line2 := dimStyle.Render(fmt.Sprintf("Model %s · horizon %.2f° · %s",
		r.Params.ModelName(), r.Params.HorizonDeg, almanac.FormatOffset(r.Params.TZHours)))

	return "  " + line1 + "\n  " + line2
}

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// weekdayName returns the short weekday name for a date.
func weekdayName(d astro.Date) string {
	return weekdayNames[d.Ordinal()%7]
}
