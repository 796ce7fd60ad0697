package astro

import (
	"math"
	"testing"
)

func TestSeasonMarks_2025(t *testing.T) {
	marks := SeasonMarks(2025)
	if len(marks) != 4 {
		t.Fatalf("len = %d, want 4", len(marks))
	}

	want := []struct {
		name    string
		date    Date
		hourUTC float64
	}{
		{"March Equinox", Date{2025, 3, 20}, 9.02},
		{"June Solstice", Date{2025, 6, 21}, 2.70},
		{"September Equinox", Date{2025, 9, 22}, 18.32},
		{"December Solstice", Date{2025, 12, 21}, 15.05},
	}

	for i, w := range want {
		m := marks[i]
		if m.Name != w.name {
			t.Errorf("marks[%d].Name = %q, want %q", i, m.Name, w.name)
		}
		if m.Date != w.date {
			t.Errorf("%s: date = %v, want %v", w.name, m.Date, w.date)
		}
		if math.Abs(m.HourUTC-w.hourUTC) > 0.25 {
			t.Errorf("%s: hour = %v, want ~%v", w.name, m.HourUTC, w.hourUTC)
		}
	}
}

func TestSeasonMarks_ChronologicalAcrossYears(t *testing.T) {
	for _, year := range []int{1990, 2000, 2025, 2050} {
		marks := SeasonMarks(year)
		prev := -1.0
		for _, m := range marks {
			if m.Date.Year != year {
				t.Errorf("%d %s: year = %d", year, m.Name, m.Date.Year)
			}
			at := float64(m.Date.Ordinal()) + m.HourUTC/24
			if at <= prev {
				t.Errorf("%d %s out of order", year, m.Name)
			}
			prev = at
		}
	}
}

func TestSeasonMarks_SolsticeDeclinationExtremes(t *testing.T) {
	// The solar declination should peak at the solstice instants.
	marks := SeasonMarks(2025)

	june := marks[1]
	if decl := SolarStateAt(june.Date, 0, june.HourUTC).DeclinationDeg(); math.Abs(decl-23.436) > 0.01 {
		t.Errorf("june solstice declination = %v, want ~23.436", decl)
	}

	december := marks[3]
	if decl := SolarStateAt(december.Date, 0, december.HourUTC).DeclinationDeg(); math.Abs(decl+23.436) > 0.01 {
		t.Errorf("december solstice declination = %v, want ~-23.436", decl)
	}
}
