package state

import (
	"sync"
	"testing"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
)

func testParams() almanac.Params {
	return almanac.Params{
		Name:       "London",
		LatDeg:     51.5074,
		LonDeg:     -0.1278,
		TZHours:    1,
		HorizonDeg: astro.DefaultHorizonDeg,
		Date:       astro.Date{Year: 2025, Month: 6, Day: 21},
		Model:      astro.IterativeModel{},
	}
}

func TestNewManager(t *testing.T) {
	m := NewManager(testParams())

	if !m.HasReport() {
		t.Fatal("expected a report after construction")
	}

	snap := m.Snapshot()
	if snap.Report == nil {
		t.Fatal("snapshot report is nil")
	}
	if snap.LastError != nil {
		t.Errorf("last error = %v, want nil", snap.LastError)
	}
	if snap.Report.Daylight.Kind != astro.DaylightOk {
		t.Errorf("daylight kind = %v, want ok", snap.Report.Daylight.Kind)
	}
	if snap.ComputedAt.IsZero() {
		t.Error("computed-at timestamp not set")
	}
}

func TestNewManager_InvalidParams(t *testing.T) {
	p := testParams()
	p.LatDeg = 123

	m := NewManager(p)
	if m.HasReport() {
		t.Error("expected no report for invalid parameters")
	}
	if m.Snapshot().LastError == nil {
		t.Error("expected a recorded error")
	}
}

func TestManager_SetParams(t *testing.T) {
	m := NewManager(testParams())

	p := testParams()
	p.Date = astro.Date{Year: 2025, Month: 12, Day: 21}
	if err := m.SetParams(p); err != nil {
		t.Fatalf("SetParams: %v", err)
	}

	snap := m.Snapshot()
	if snap.Report.Params.Date != p.Date {
		t.Errorf("report date = %v, want %v", snap.Report.Params.Date, p.Date)
	}
	// Winter London: a short day.
	if snap.Report.Daylight.DayLengthHrs > 9 {
		t.Errorf("december day length = %v, want < 9", snap.Report.Daylight.DayLengthHrs)
	}
}

func TestManager_SetParams_InvalidKeepsReport(t *testing.T) {
	m := NewManager(testParams())
	before := m.Snapshot().Report

	p := testParams()
	p.TZHours = 99
	if err := m.SetParams(p); err == nil {
		t.Fatal("expected an error for an invalid offset")
	}

	snap := m.Snapshot()
	if snap.Report != before {
		t.Error("report changed after a rejected update")
	}
	if snap.Params.TZHours != 1 {
		t.Errorf("params offset = %v, want the previous 1", snap.Params.TZHours)
	}
	if snap.LastError == nil {
		t.Error("expected a recorded error")
	}
}

func TestManager_StepDate(t *testing.T) {
	m := NewManager(testParams())

	if err := m.StepDate(7); err != nil {
		t.Fatalf("StepDate: %v", err)
	}
	got := m.Params().Date
	want := astro.Date{Year: 2025, Month: 6, Day: 28}
	if got != want {
		t.Errorf("date = %v, want %v", got, want)
	}

	if err := m.StepDate(-7); err != nil {
		t.Fatalf("StepDate back: %v", err)
	}
	if got := m.Params().Date; got != testParams().Date {
		t.Errorf("date = %v, want %v", got, testParams().Date)
	}
}

func TestManager_StepDate_CrossesYear(t *testing.T) {
	p := testParams()
	p.Date = astro.Date{Year: 2025, Month: 12, Day: 30}
	m := NewManager(p)

	if err := m.StepDate(3); err != nil {
		t.Fatalf("StepDate: %v", err)
	}
	want := astro.Date{Year: 2026, Month: 1, Day: 2}
	if got := m.Params().Date; got != want {
		t.Errorf("date = %v, want %v", got, want)
	}
}

func TestManager_SetDate_Invalid(t *testing.T) {
	m := NewManager(testParams())

	if err := m.SetDate(astro.Date{Year: 2025, Month: 2, Day: 30}); err == nil {
		t.Fatal("expected an error for an invalid date")
	}
	if got := m.Params().Date; got != testParams().Date {
		t.Errorf("date = %v, want unchanged %v", got, testParams().Date)
	}
}

func TestManager_SetLocation(t *testing.T) {
	m := NewManager(testParams())

	if err := m.SetLocation("Sydney", -33.8688, 151.2093, 10); err != nil {
		t.Fatalf("SetLocation: %v", err)
	}

	p := m.Params()
	if p.Name != "Sydney" || p.LatDeg != -33.8688 || p.TZHours != 10 {
		t.Errorf("params = %+v, want Sydney at -33.8688/10", p)
	}
	// Southern winter solstice: a short day.
	if dl := m.Snapshot().Report.Daylight.DayLengthHrs; dl > 11 {
		t.Errorf("sydney june day length = %v, want < 11", dl)
	}
}

func TestManager_SetLocation_InvalidRejected(t *testing.T) {
	m := NewManager(testParams())

	if err := m.SetLocation("Nowhere", 120, 0, 0); err == nil {
		t.Fatal("expected an error for latitude 120")
	}
	if got := m.Params().Name; got != "London" {
		t.Errorf("name = %q, want unchanged London", got)
	}
}

func TestManager_ToggleModel(t *testing.T) {
	m := NewManager(testParams())

	if got := m.ToggleModel(); got != "spencer" {
		t.Errorf("first toggle = %q, want spencer", got)
	}
	if got := m.Snapshot().Report.Params.ModelName(); got != "spencer" {
		t.Errorf("report model = %q, want spencer", got)
	}

	if got := m.ToggleModel(); got != "iterative" {
		t.Errorf("second toggle = %q, want iterative", got)
	}
}

func TestManager_YearCaching(t *testing.T) {
	m := NewManager(testParams())

	first := m.Year(2025)
	if len(first.Days) != 365 {
		t.Fatalf("days = %d, want 365", len(first.Days))
	}

	if second := m.Year(2025); second != first {
		t.Error("expected the cached series on the second call")
	}

	m.ToggleModel()
	if third := m.Year(2025); third == first {
		t.Error("expected a fresh series after a model change")
	}

	if leap := m.Year(2024); len(leap.Days) != 366 {
		t.Errorf("2024 days = %d, want 366", len(leap.Days))
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(testParams())

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_ = m.StepDate(step)
				_ = m.Snapshot()
				_ = m.Params()
			}
		}(1 - 2*(g%2))
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			_ = m.Year(2025)
			m.ToggleModel()
		}
	}()

	wg.Wait()

	if !m.HasReport() {
		t.Error("expected a report after concurrent access")
	}
}
