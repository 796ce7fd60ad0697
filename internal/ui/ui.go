// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/locate"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewDay ViewMode = iota
	ViewYear
	ViewMoon
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// LocateMsg carries the result of a geolocation lookup.
	LocateMsg struct {
		Result *locate.Result
		Err    error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state   *state.Manager
	locator locate.Provider

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	locating  bool

	// Sub-models
	dayView  DayViewModel
	yearView YearViewModel
	moonView MoonViewModel

	// Data snapshot (refreshed on ticks and after state changes)
	snapshot state.Snapshot
}

// New creates a new root UI model. locator may be nil when geolocation
// is unavailable.
func New(stateMgr *state.Manager, locator locate.Provider) Model {
	m := Model{
		state:    stateMgr,
		locator:  locator,
		viewMode: ViewDay,
		dayView:  NewDayViewModel(),
		yearView: NewYearViewModel(),
		moonView: NewMoonViewModel(),
	}
	m.refreshAll()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewDay
		case "2":
			m.viewMode = ViewYear
		case "3":
			m.viewMode = ViewMoon

		case "tab":
			// Cycle through views
			m.viewMode = (m.viewMode + 1) % 3

		case "left", "h":
			m.stepDate(-1)
		case "right", "l":
			m.stepDate(1)
		case "shift+left", "H":
			m.stepDate(-7)
		case "shift+right", "L":
			m.stepDate(7)
		case "pgup":
			m.stepDate(-30)
		case "pgdown":
			m.stepDate(30)

		case "t":
			today, _ := astro.ClockAt(time.Now(), m.snapshot.Params.TZHours)
			if err := m.state.SetDate(today); err == nil {
				m.refreshAll()
			}

		case "m":
			name := m.state.ToggleModel()
			m.statusMsg = "Day length model: " + name
			m.refreshAll()

		case "g":
			if m.locator == nil {
				m.statusMsg = "Geolocation is not available"
			} else if !m.locating {
				m.locating = true
				m.statusMsg = ""
				cmds = append(cmds, locateCmd(m.locator))
			}

		case "enter":
			if m.viewMode == ViewYear {
				m.viewMode = ViewDay
			}

		default:
			// Pass to active view
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case LocateMsg:
		m.locating = false
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("Locate failed: %v", msg.Err)
			break
		}
		res := msg.Result
		offset, mismatch := locate.ReconcileOffset(res.UTCOffset, locate.SystemOffset(time.Now()))
		if err := m.state.SetLocation(res.City, res.Latitude, res.Longitude, offset); err != nil {
			m.statusMsg = fmt.Sprintf("Locate failed: %v", err)
			break
		}
		m.statusMsg = fmt.Sprintf("Located: %s · %s · %s",
			res.City, almanac.FormatLatLon(res.Latitude, res.Longitude), almanac.FormatOffset(offset))
		if mismatch {
			m.statusMsg += " (differs from system clock)"
		}
		m.refreshAll()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Propagate to sub-models
		// Logo takes ~11 lines, footer ~2 lines
		contentHeight := msg.Height - 13
		m.dayView = m.dayView.SetSize(msg.Width, contentHeight)
		m.yearView = m.yearView.SetSize(msg.Width, contentHeight)
		m.moonView = m.moonView.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.refreshAll()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// refreshAll pulls a fresh snapshot and pushes it into the sub-models.
func (m *Model) refreshAll() {
	m.snapshot = m.state.Snapshot()
	m.dayView = m.dayView.UpdateData(m.snapshot)
	m.moonView = m.moonView.UpdateData(m.snapshot)
	m.yearView = m.yearView.UpdateData(m.snapshot)
	m.yearView = m.yearView.SetSeries(m.state.Year(m.snapshot.Params.Date.Year))
}

func (m *Model) stepDate(days int) {
	if err := m.state.StepDate(days); err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.refreshAll()
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewDay:
		m.dayView, cmd = m.dayView.Update(msg)
	case ViewYear:
		m.yearView, cmd = m.yearView.Update(msg)
	case ViewMoon:
		m.moonView, cmd = m.moonView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewDay:
		content = m.dayView.View()
	case ViewYear:
		content = m.yearView.View()
	case ViewMoon:
		content = m.moonView.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderStatusLine()
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`   █████╗ ██╗     ███╗   ███╗ █████╗ ███╗   ██╗ █████╗  ██████╗`,
		`  ██╔══██╗██║     ████╗ ████║██╔══██╗████╗  ██║██╔══██╗██╔════╝`,
		`  ███████║██║     ██╔████╔██║███████║██╔██╗ ██║███████║██║     `,
		`  ██╔══██║██║     ██║╚██╔╝██║██╔══██║██║╚██╗██║██╔══██║██║     `,
		`  ██║  ██║███████╗██║ ╚═╝ ██║██║  ██║██║ ╚████║██║  ██║╚██████╗`,
		`  ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝ ╚═════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	// Render each line with a horizontal truecolor gradient
	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	// Tagline
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Daylight & Moonlight · Local Almanac"))
	b.WriteString("\n")

	// Version/copyright line
	copyright := fmt.Sprintf("  (c) 2026 litescript.net | v%s", version.Version)
	b.WriteString(muted.Render(copyright))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Creates a dawn effect: night violet -> orange -> gold -> pale yellow
func gradientColor(col, row, width, height int) string {
	// Normalize positions to 0-1
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Violet (#7C3AED) -> Orange (#F97316) -> Gold (#FACC15) -> Pale (#FDE68A)
	var r, g, b float64

	if xRatio < 0.33 {
		// Violet to Orange
		t := xRatio / 0.33
		r = 124 + t*(249-124)
		g = 58 + t*(115-58)
		b = 237 + t*(22-237)
	} else if xRatio < 0.66 {
		// Orange to Gold
		t := (xRatio - 0.33) / 0.33
		r = 249 + t*(250-249)
		g = 115 + t*(204-115)
		b = 22 + t*(21-22)
	} else {
		// Gold to Pale
		t := (xRatio - 0.66) / 0.34
		r = 250 + t*(253-250)
		g = 204 + t*(230-204)
		b = 21 + t*(138-21)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.5)
	r *= brightnessFactor
	g *= brightnessFactor
	b *= brightnessFactor

	// Clamp to valid range
	ri := int(r)
	gi := int(g)
	bi := int(b)
	if ri > 255 {
		ri = 255
	}
	if gi > 255 {
		gi = 255
	}
	if bi > 255 {
		bi = 255
	}
	if ri < 0 {
		ri = 0
	}
	if gi < 0 {
		gi = 0
	}
	if bi < 0 {
		bi = 0
	}

	return fmt.Sprintf("#%02X%02X%02X", ri, gi, bi)
}

func (m Model) renderStatusLine() string {
	tabs := m.renderTabs()
	return tabs + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Day", "[2] Year", "[3] Moon"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.locating:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Locating...")
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	default:
		p := m.snapshot.Params
		place := p.Name
		if place == "" {
			place = almanac.FormatLatLon(p.LatDeg, p.LonDeg)
		}
		status = accentStyle.Render(place) + dimStyle.Render(" · "+almanac.FormatOffset(p.TZHours))
		if m.snapshot.ComputeDur > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDur.Round(time.Microsecond).String() + ")")
		}
	}

	// View-specific help hints
	var help string
	switch m.viewMode {
	case ViewYear:
		help = dimStyle.Render("←/→: day | pgup/pgdn: month | enter: open day | t: today")
	case ViewMoon:
		help = dimStyle.Render("←/→: day | shift: week | t: today | g: locate")
	default:
		help = dimStyle.Render("←/→: day | shift: week | t: today | m: model | g: locate")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help

	// Show status message if present
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}

	return footer
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

func locateCmd(p locate.Provider) tea.Cmd {
	return func() tea.Msg {
		res, err := p.Locate(context.Background())
		return LocateMsg{Result: res, Err: err}
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	// Shimmer sweeps smoothly across
	pos := m.animTick % (textLen + 8)

	var result strings.Builder

	for i, r := range runes {
		// Distance from shimmer center
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		if dist <= 1 {
			r8, g8, b8 = 180, 160, 220
		} else if dist <= 3 {
			r8, g8, b8 = 140, 120, 180
		} else if dist <= 5 {
			r8, g8, b8 = 110, 90, 150
		} else {
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
