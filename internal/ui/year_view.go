package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

const (
	glyphBar      = '█'
	glyphBarEmpty = '▁'
	glyphCursor   = '▼'
	glyphSeason   = '◆'

	colorCursor    = "229"
	colorSeason    = "135"
	colorMonthAxis = "244"
)

// Day-length bar ramp: polar-night indigo through amber to solstice gold.
var (
	yearColorLow  = [3]uint8{0x31, 0x2E, 0x81}
	yearColorMid  = [3]uint8{0xF5, 0x9E, 0x0B}
	yearColorHigh = [3]uint8{0xFD, 0xE0, 0x47}
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// fmtMonthDay renders a date as "Jun 21".
func fmtMonthDay(d astro.Date) string {
	return fmt.Sprintf("%s %d", monthNames[d.Month-1], d.Day)
}

// YearViewModel renders day-length bars for a whole year.
type YearViewModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	series   *almanac.YearSeries
}

// NewYearViewModel creates a new year view model.
func NewYearViewModel() YearViewModel {
	return YearViewModel{}
}

// Init implements the Bubble Tea model interface.
func (m YearViewModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m YearViewModel) SetSize(width, height int) YearViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m YearViewModel) UpdateData(snapshot state.Snapshot) YearViewModel {
	m.snapshot = snapshot
	return m
}

// SetSeries updates the year series backing the chart.
func (m YearViewModel) SetSeries(series *almanac.YearSeries) YearViewModel {
	m.series = series
	return m
}

// Update handles messages. The year view has no keys of its own.
func (m YearViewModel) Update(msg tea.Msg) (YearViewModel, tea.Cmd) {
	return m, nil
}

// View renders the year view.
func (m YearViewModel) View() string {
	if m.width < 40 || m.height < 12 {
		return "Year view requires larger terminal"
	}

	if m.series == nil || len(m.series.Days) == 0 {
		return "Computing year..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	chartBlock := m.height - 6
	b.WriteString(m.renderBars(chartBlock))
	b.WriteString("\n\n")
	b.WriteString(m.renderSelectedDay())
	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderSeasons())

	return b.String()
}

func (m YearViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#d0c8ff"))

	p := m.snapshot.Params
	place := p.Name
	if place == "" {
		place = "Observer"
	}

	title := titleStyle.Render(fmt.Sprintf("Year %d", m.series.Year))
	location := accentStyle.Render(fmt.Sprintf("%s %s", place, almanac.FormatLatLon(p.LatDeg, p.LonDeg)))
	model := dimStyle.Render("model " + p.ModelName())

	return fmt.Sprintf("%s | %s | %s", title, location, model)
}

// renderBars draws the day-length column chart with the month axis.
func (m YearViewModel) renderBars(block int) string {
	barRows := block - 1
	if barRows < 4 {
		barRows = 4
	}
	columns := m.width - axisWidth

	lengths := make([]float64, len(m.series.Days))
	for i, d := range m.series.Days {
		lengths[i] = d.Daylight.DayLengthHrs
	}
	buckets := resampleSeries(lengths, columns)

	height := barRows + 1
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, m.width)
		colors[y] = make([]lipgloss.Color, m.width)
		for x := 0; x < m.width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = "236"
		}
	}

	// Left axis rule with hour labels
	for y := 0; y < barRows; y++ {
		canvas[y][axisWidth-1] = glyphAxis
		colors[y][axisWidth-1] = "60"
	}
	drawLabel(canvas, colors, 0, "24h", "244")
	drawLabel(canvas, colors, barRows/2, "12h", "244")
	drawLabel(canvas, colors, barRows-1, " 0h", "244")

	// One column per bucket, filled bottom-up
	for x, hrs := range buckets {
		filled := int(hrs/24*float64(barRows) + 0.5)
		if filled > barRows {
			filled = barRows
		}
		cx := axisWidth + x
		color := dayLengthColor(hrs)

		if filled == 0 {
			canvas[barRows-1][cx] = glyphBarEmpty
			colors[barRows-1][cx] = colorNight
			continue
		}
		for row := barRows - filled; row < barRows; row++ {
			canvas[row][cx] = glyphBar
			colors[row][cx] = color
		}
	}

	// Season markers along the top
	for _, mark := range m.series.Seasons {
		x := axisWidth + dayColumn(mark.Date, len(m.series.Days), columns)
		canvas[0][x] = glyphSeason
		colors[0][x] = colorSeason
	}

	// Cursor over the selected date
	sel := m.snapshot.Params.Date
	if sel.Year == m.series.Year {
		x := axisWidth + dayColumn(sel, len(m.series.Days), columns)
		canvas[0][x] = glyphCursor
		colors[0][x] = colorCursor
		for y := 1; y < barRows; y++ {
			if canvas[y][x] == glyphBar {
				colors[y][x] = colorCursor
			}
		}
	}

	// Month axis along the bottom
	for month := 1; month <= 12; month++ {
		first := astro.Date{Year: m.series.Year, Month: month, Day: 1}
		x := axisWidth + dayColumn(first, len(m.series.Days), columns)
		canvas[barRows][x] = rune(monthNames[month-1][0])
		colors[barRows][x] = colorMonthAxis
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < m.width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// dayColumn maps a date onto a chart column.
func dayColumn(d astro.Date, days, columns int) int {
	x := (d.DayOfYear() - 1) * columns / days
	if x >= columns {
		x = columns - 1
	}
	if x < 0 {
		x = 0
	}
	return x
}

// dayLengthColor maps a day length in hours onto the bar ramp.
func dayLengthColor(hrs float64) lipgloss.Color {
	r, g, b := interpolateRamp(yearColorLow, yearColorMid, yearColorHigh, hrs/24)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

func (m YearViewModel) renderSelectedDay() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	sel := m.snapshot.Params.Date
	if sel.Year != m.series.Year {
		return "  " + labelStyle.Render("Selected date is outside this year")
	}

	idx := sel.DayOfYear() - 1
	if idx < 0 || idx >= len(m.series.Days) {
		return ""
	}
	day := m.series.Days[idx]

	prefix := valueStyle.Render(fmt.Sprintf("%s %s", weekdayName(sel), sel.String()))
	switch day.Daylight.Kind {
	case astro.DaylightPolarDay:
		return "  " + prefix + labelStyle.Render("   Polar day · length 24h 00m")
	case astro.DaylightPolarNight:
		return "  " + prefix + labelStyle.Render("   Polar night · length 0h 00m")
	default:
		return "  " + prefix +
			labelStyle.Render("   Rise ") + valueStyle.Render(almanac.FormatClock(day.Daylight.SunriseHours)) +
			labelStyle.Render("   Set ") + valueStyle.Render(almanac.FormatClock(day.Daylight.SunsetHours)) +
			labelStyle.Render("   Length ") + valueStyle.Render(almanac.FormatDuration(day.Daylight.DayLengthHrs))
	}
}

func (m YearViewModel) renderStats() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	longest := m.series.Days[m.series.Longest()]
	shortest := m.series.Days[m.series.Shortest()]

	return "  " +
		labelStyle.Render("Longest ") + valueStyle.Render(fmt.Sprintf("%s %s", fmtMonthDay(longest.Date), almanac.FormatDuration(longest.Daylight.DayLengthHrs))) +
		labelStyle.Render("   Shortest ") + valueStyle.Render(fmt.Sprintf("%s %s", fmtMonthDay(shortest.Date), almanac.FormatDuration(shortest.Daylight.DayLengthHrs))) +
		labelStyle.Render("   Mean ") + valueStyle.Render(almanac.FormatDuration(m.series.MeanLength()))
}

func (m YearViewModel) renderSeasons() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	seasonStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("135"))

	var parts []string
	for _, mark := range m.series.Seasons {
		words := strings.Fields(mark.Name)
		short := words[len(words)-1]
		parts = append(parts, seasonStyle.Render(fmt.Sprintf("%c %s", glyphSeason, short))+
			labelStyle.Render(fmt.Sprintf(" %s %s UTC", fmtMonthDay(mark.Date), almanac.FormatClock(mark.HourUTC))))
	}

	return "  " + strings.Join(parts, "   ")
}
