// Package state provides thread-safe parameter and result management
// for the almanac front ends.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
)

// maxYearCache bounds the cached year series. Beyond it the cache is
// reset wholesale rather than tracking entry age.
const maxYearCache = 8

// yearKey identifies a cached year series. Every parameter that feeds
// the day-length solve is part of the key, so a location, offset,
// horizon or model change recomputes.
type yearKey struct {
	year    int
	lat     float64
	lon     float64
	tz      float64
	horizon float64
	model   string
}

// Manager holds the current parameters and the report computed from
// them. Recomputation is synchronous: a full day report runs in
// milliseconds, so every parameter change recomputes immediately.
//
// The manager maintains one invariant: stored parameters are always
// valid and the report always matches them. Mutations carrying invalid
// values are rejected, leaving the previous report in place and the
// error recorded for the status line.
type Manager struct {
	mu sync.RWMutex

	params almanac.Params

	report     *almanac.Report
	lastError  error
	computedAt time.Time
	computeDur time.Duration

	yearCache map[yearKey]*almanac.YearSeries
}

// NewManager creates a manager and computes the first report. Invalid
// starting parameters leave the report nil with the error recorded.
func NewManager(p almanac.Params) *Manager {
	m := &Manager{
		params:    p,
		yearCache: make(map[yearKey]*almanac.YearSeries),
	}
	if err := p.Validate(); err != nil {
		m.lastError = err
		return m
	}
	m.recomputeLocked()
	return m
}

// recomputeLocked runs the engine on the current, already validated
// parameters. Callers hold the write lock.
func (m *Manager) recomputeLocked() {
	start := time.Now()
	m.report = almanac.Compute(m.params)
	m.computedAt = start
	m.computeDur = time.Since(start)
	m.lastError = nil
}

// Params returns the current parameters.
func (m *Manager) Params() almanac.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// HasReport reports whether at least one computation has succeeded.
func (m *Manager) HasReport() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report != nil
}

// SetParams replaces the parameters and recomputes. Invalid parameters
// are rejected: the previous parameters and report stay in place.
func (m *Manager) SetParams(p almanac.Params) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := p.Validate(); err != nil {
		m.lastError = err
		return err
	}
	m.params = p
	m.recomputeLocked()
	return nil
}

// SetDate moves the report to a new date and recomputes.
func (m *Manager) SetDate(d astro.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := d.Validate(); err != nil {
		m.lastError = err
		return err
	}
	m.params.Date = d
	m.recomputeLocked()
	return nil
}

// StepDate moves the date by days (negative steps back) and
// recomputes.
func (m *Manager) StepDate(days int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.params.Date.AddDays(days)
	if err := d.Validate(); err != nil {
		m.lastError = err
		return err
	}
	m.params.Date = d
	m.recomputeLocked()
	return nil
}

// SetLocation applies a new observer location and clock offset, as
// produced by the geolocation client, and recomputes.
func (m *Manager) SetLocation(name string, latDeg, lonDeg, tzHours float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.params
	p.Name = name
	p.LatDeg = latDeg
	p.LonDeg = lonDeg
	p.TZHours = tzHours
	if err := p.Validate(); err != nil {
		m.lastError = err
		return err
	}
	m.params = p
	m.recomputeLocked()
	return nil
}

// ToggleModel flips between the iterative and spencer day-length
// strategies, recomputes, and returns the new model name.
func (m *Manager) ToggleModel() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.params.ModelName() == "spencer" {
		m.params.Model = astro.IterativeModel{}
	} else {
		m.params.Model = astro.SpencerModel{}
	}
	m.recomputeLocked()
	return m.params.ModelName()
}

// Year returns the day-length series for year at the current location,
// computing and caching it on first use.
func (m *Manager) Year(year int) *almanac.YearSeries {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := yearKey{
		year:    year,
		lat:     m.params.LatDeg,
		lon:     m.params.LonDeg,
		tz:      m.params.TZHours,
		horizon: m.params.HorizonDeg,
		model:   m.params.ModelName(),
	}
	if ys, ok := m.yearCache[key]; ok {
		return ys
	}

	ys := almanac.ComputeYear(year, m.params)
	if len(m.yearCache) >= maxYearCache {
		m.yearCache = make(map[yearKey]*almanac.YearSeries, maxYearCache)
	}
	m.yearCache[key] = ys
	return ys
}

// Snapshot is a consistent view of the manager. The report pointer is
// shared: reports are never mutated after computation.
type Snapshot struct {
	Params     almanac.Params
	Report     *almanac.Report
	LastError  error
	ComputedAt time.Time
	ComputeDur time.Duration
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Params:     m.params,
		Report:     m.report,
		LastError:  m.lastError,
		ComputedAt: m.computedAt,
		ComputeDur: m.computeDur,
	}
}
