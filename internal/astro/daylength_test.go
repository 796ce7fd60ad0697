package astro

import (
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

func TestComputeDaylight_LondonJuneSolstice(t *testing.T) {
	// 2025-06-21 at 51.5N 0E. On summer time (UTC+1) the clock times
	// read 04:43 and 21:21.
	dl := ComputeDaylight(Date{2025, 6, 21}, 51.5, 0, 1, DefaultHorizonDeg)

	if dl.Kind != DaylightOk {
		t.Fatalf("Kind = %v, want ok", dl.Kind)
	}
	if dl.DayLengthHrs <= 16 {
		t.Errorf("day length = %v, want > 16", dl.DayLengthHrs)
	}
	if dl.SunriseHours >= 5 {
		t.Errorf("sunrise = %v, want before 05:00", dl.SunriseHours)
	}
	if dl.SunsetHours <= 21 {
		t.Errorf("sunset = %v, want after 21:00", dl.SunsetHours)
	}
	if dl.SunriseHours < 4.5 || dl.SunriseHours > 4.95 {
		t.Errorf("sunrise = %v, want ~4.71", dl.SunriseHours)
	}
	if dl.SunsetHours < 21.1 || dl.SunsetHours > 21.6 {
		t.Errorf("sunset = %v, want ~21.35", dl.SunsetHours)
	}
}

func TestComputeDaylight_LondonJuneSolsticeUTC(t *testing.T) {
	// Same date and place on a UTC clock: the sun rises before 04:00.
	dl := ComputeDaylight(Date{2025, 6, 21}, 51.5, 0, 0, DefaultHorizonDeg)

	if dl.Kind != DaylightOk {
		t.Fatalf("Kind = %v, want ok", dl.Kind)
	}
	if dl.DayLengthHrs <= 16 || dl.DayLengthHrs >= 17 {
		t.Errorf("day length = %v, want in (16, 17)", dl.DayLengthHrs)
	}
	if dl.SunriseHours >= 5 {
		t.Errorf("sunrise = %v, want before 05:00", dl.SunriseHours)
	}
	if dl.SunsetHours < 20.1 || dl.SunsetHours > 20.6 {
		t.Errorf("sunset = %v, want ~20.35 UTC", dl.SunsetHours)
	}
}

func TestComputeDaylight_LondonDecemberSolstice(t *testing.T) {
	dl := ComputeDaylight(Date{2025, 12, 21}, 51.5, 0, 0, DefaultHorizonDeg)

	if dl.Kind != DaylightOk {
		t.Fatalf("Kind = %v, want ok", dl.Kind)
	}
	if dl.DayLengthHrs >= 9 {
		t.Errorf("day length = %v, want < 9", dl.DayLengthHrs)
	}
	if dl.DayLengthHrs < 7.5 || dl.DayLengthHrs > 8.2 {
		t.Errorf("day length = %v, want ~7.8", dl.DayLengthHrs)
	}
}

func TestComputeDaylight_Equator(t *testing.T) {
	dates := []Date{
		{2025, 1, 15},
		{2025, 3, 20},
		{2025, 6, 21},
		{2025, 9, 22},
		{2025, 12, 21},
	}

	for _, d := range dates {
		dl := ComputeDaylight(d, 0, 0, 0, DefaultHorizonDeg)
		if dl.Kind != DaylightOk {
			t.Fatalf("%v: Kind = %v, want ok", d, dl.Kind)
		}
		if dl.DayLengthHrs < 11.8 || dl.DayLengthHrs > 12.2 {
			t.Errorf("%v: day length = %v, want 12.0 +/- 0.2", d, dl.DayLengthHrs)
		}
	}
}

func TestComputeDaylight_PolarCases(t *testing.T) {
	tests := []struct {
		name    string
		date    Date
		latDeg  float64
		lonDeg  float64
		tzHours float64
		want    DaylightKind
		wantLen float64
	}{
		{"85N june", Date{2025, 6, 21}, 85, 0, 0, DaylightPolarDay, 24},
		{"85N june far east", Date{2025, 6, 21}, 85, 100, 8, DaylightPolarDay, 24},
		{"85N december", Date{2025, 12, 21}, 85, 0, 0, DaylightPolarNight, 0},
		{"85S june", Date{2025, 6, 21}, -85, 0, 0, DaylightPolarNight, 0},
		{"85S december", Date{2025, 12, 21}, -85, -150, -10, DaylightPolarDay, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dl := ComputeDaylight(tt.date, tt.latDeg, tt.lonDeg, tt.tzHours, DefaultHorizonDeg)
			if dl.Kind != tt.want {
				t.Fatalf("Kind = %v, want %v", dl.Kind, tt.want)
			}
			if dl.DayLengthHrs != tt.wantLen {
				t.Errorf("day length = %v, want %v", dl.DayLengthHrs, tt.wantLen)
			}
			if !math.IsNaN(dl.SunriseHours) || !math.IsNaN(dl.SunsetHours) {
				t.Errorf("rise/set = %v/%v, want NaN for %v", dl.SunriseHours, dl.SunsetHours, dl.Kind)
			}
			if dl.HasRiseSet() {
				t.Error("HasRiseSet() = true, want false")
			}
		})
	}
}

func TestComputeDaylight_MidLatitudeGrid(t *testing.T) {
	// At latitudes the midnight sun cannot reach, every date must
	// produce a defined rise and set with the wrap identity intact.
	lats := []float64{-65, -60, -40, 0, 40, 60, 65}
	dates := []Date{
		{2025, 1, 10},
		{2025, 3, 20},
		{2025, 6, 21},
		{2025, 9, 22},
		{2025, 11, 5},
		{2025, 12, 21},
	}

	for _, lat := range lats {
		for _, d := range dates {
			dl := ComputeDaylight(d, lat, 0, 0, DefaultHorizonDeg)
			if dl.Kind != DaylightOk {
				t.Fatalf("lat %v %v: Kind = %v, want ok", lat, d, dl.Kind)
			}
			if dl.DayLengthHrs <= 0 || dl.DayLengthHrs >= 24 {
				t.Errorf("lat %v %v: day length = %v, want in (0, 24)", lat, d, dl.DayLengthHrs)
			}
			if dl.SunriseHours < 0 || dl.SunriseHours >= 24 {
				t.Errorf("lat %v %v: sunrise = %v, want in [0, 24)", lat, d, dl.SunriseHours)
			}
			if dl.SunsetHours < 0 || dl.SunsetHours >= 24 {
				t.Errorf("lat %v %v: sunset = %v, want in [0, 24)", lat, d, dl.SunsetHours)
			}
			if got := wrapHours(dl.SunsetHours - dl.SunriseHours); got != dl.DayLengthHrs {
				t.Errorf("lat %v %v: (set-rise) mod 24 = %v, day length = %v", lat, d, got, dl.DayLengthHrs)
			}
		}
	}
}

func TestComputeDaylight_TimezoneInvariance(t *testing.T) {
	// Shifting the clock moves the reported times, not the amount of
	// daylight.
	utc := ComputeDaylight(Date{2025, 6, 21}, 51.5, 0, 0, DefaultHorizonDeg)
	bst := ComputeDaylight(Date{2025, 6, 21}, 51.5, 0, 1, DefaultHorizonDeg)

	if diff := math.Abs(utc.DayLengthHrs - bst.DayLengthHrs); diff > 0.02 {
		t.Errorf("day length differs by %v across timezones", diff)
	}
	if diff := math.Abs((bst.SunriseHours - utc.SunriseHours) - 1); diff > 0.02 {
		t.Errorf("sunrise shift = %v, want ~1h", bst.SunriseHours-utc.SunriseHours)
	}
}

func TestComputeDaylight_AgainstSunriseLibrary(t *testing.T) {
	// Cross-check rise and set against an independent NOAA-based
	// implementation, on a UTC clock at sites near the prime meridian
	// so both occur within one UTC day.
	sites := []struct {
		name     string
		lat, lon float64
	}{
		{"london", 51.5074, -0.1278},
		{"accra", 5.5560, -0.1969},
		{"cape town", -33.9249, 18.4241},
		{"madrid", 40.4168, -3.7038},
	}
	dates := []Date{
		{2025, 3, 20},
		{2025, 6, 21},
		{2025, 10, 7},
	}

	const tol = 5.0 / 60 // five minutes

	for _, site := range sites {
		for _, d := range dates {
			dl := ComputeDaylight(d, site.lat, site.lon, 0, DefaultHorizonDeg)
			if dl.Kind != DaylightOk {
				t.Fatalf("%s %v: Kind = %v, want ok", site.name, d, dl.Kind)
			}

			rise, set := sunrise.SunriseSunset(site.lat, site.lon, d.Year, time.Month(d.Month), d.Day)
			wantRise := float64(rise.Hour()) + float64(rise.Minute())/60 + float64(rise.Second())/3600
			wantSet := float64(set.Hour()) + float64(set.Minute())/60 + float64(set.Second())/3600

			if diff := math.Abs(dl.SunriseHours - wantRise); diff > tol {
				t.Errorf("%s %v: sunrise %v, reference %v", site.name, d, dl.SunriseHours, wantRise)
			}
			if diff := math.Abs(dl.SunsetHours - wantSet); diff > tol {
				t.Errorf("%s %v: sunset %v, reference %v", site.name, d, dl.SunsetHours, wantSet)
			}
		}
	}
}

func TestModelByName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"iterative", "iterative", false},
		{"spencer", "spencer", false},
		{"", "iterative", false},
		{"vsop87", "", true},
	}

	for _, tt := range tests {
		m, err := ModelByName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ModelByName(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ModelByName(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if m.Name() != tt.want {
			t.Errorf("ModelByName(%q).Name() = %q, want %q", tt.in, m.Name(), tt.want)
		}
	}
}

func TestIterativeModel_MatchesComputeDaylight(t *testing.T) {
	d := Date{2025, 4, 18}
	direct := ComputeDaylight(d, 48.8566, 2.3522, 2, DefaultHorizonDeg)
	viaModel := IterativeModel{}.DayLength(d, 48.8566, 2.3522, 2, DefaultHorizonDeg)

	if direct != viaModel {
		t.Errorf("model result %+v, direct result %+v", viaModel, direct)
	}
}

func TestDaylightKind_String(t *testing.T) {
	tests := []struct {
		kind DaylightKind
		want string
	}{
		{DaylightOk, "ok"},
		{DaylightPolarDay, "polar day"},
		{DaylightPolarNight, "polar night"},
		{DaylightIndeterminate, "indeterminate"},
		{DaylightKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
