package astro

import (
	"math"
	"testing"
)

func minMax(vals []float64) (min, max float64, argMin, argMax int) {
	min, max = vals[0], vals[0]
	for i, v := range vals {
		if v < min {
			min, argMin = v, i
		}
		if v > max {
			max, argMax = v, i
		}
	}
	return min, max, argMin, argMax
}

func TestSolarElevations_SeriesLength(t *testing.T) {
	elev := SolarElevations(Date{2025, 6, 21}, 51.5, 0, 0)
	if len(elev) != MinutesPerDay {
		t.Fatalf("len = %d, want %d", len(elev), MinutesPerDay)
	}
}

func TestSolarElevations_LondonJunePeak(t *testing.T) {
	// Transit altitude at 51.5N on the June solstice:
	// 90 - 51.5 + 23.44 = 61.94 degrees, a few minutes after 12:00.
	elev := SolarElevations(Date{2025, 6, 21}, 51.5, 0, 0)
	min, max, _, argMax := minMax(elev)

	if max < 61.4 || max > 62.4 {
		t.Errorf("max elevation = %v, want ~61.94", max)
	}
	if argMax < 695 || argMax > 750 {
		t.Errorf("max at minute %d, want near solar noon", argMax)
	}
	if min < -15.6 || min > -14.6 {
		t.Errorf("min elevation = %v, want ~-15.06", min)
	}
}

func TestSolarElevations_EquatorTransits(t *testing.T) {
	// On the equinox the sun passes essentially overhead at the
	// equator; on the June solstice the transit drops by the obliquity.
	_, max, _, _ := minMax(SolarElevations(Date{2025, 3, 20}, 0, 0, 0))
	if max < 88.5 || max > 90 {
		t.Errorf("equinox max elevation = %v, want near 90", max)
	}

	_, max, _, _ = minMax(SolarElevations(Date{2025, 6, 21}, 0, 0, 0))
	if max < 66.0 || max > 67.1 {
		t.Errorf("june max elevation = %v, want ~66.56", max)
	}
}

func TestSolarElevations_ContinuousAcrossMidnight(t *testing.T) {
	elev := SolarElevations(Date{2025, 6, 21}, 51.5, 0, 0)
	min, max, _, _ := minMax(elev)

	swing := max - min
	if gap := math.Abs(elev[0] - elev[MinutesPerDay-1]); gap > swing/50 {
		t.Errorf("midnight gap = %v with daily swing %v", gap, swing)
	}
}

func TestSolarElevations_CountMatchesDayLength(t *testing.T) {
	// Minutes spent above the horizon angle should agree with the
	// solver's day length to within a few minutes of sampling slack.
	tests := []struct {
		name     string
		date     Date
		lat, lon float64
	}{
		{"london june", Date{2025, 6, 21}, 51.5, 0},
		{"london december", Date{2025, 12, 21}, 51.5, 0},
		{"madrid equinox", Date{2025, 3, 20}, 40.4168, -3.7038},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elev := SolarElevations(tt.date, tt.lat, tt.lon, 0)
			lit := 0
			for _, e := range elev {
				if e > DefaultHorizonDeg {
					lit++
				}
			}

			dl := ComputeDaylight(tt.date, tt.lat, tt.lon, 0, DefaultHorizonDeg)
			want := dl.DayLengthHrs * 60
			if math.Abs(float64(lit)-want) > 5 {
				t.Errorf("lit minutes = %d, day length = %v minutes", lit, want)
			}
		})
	}
}

func TestSolarElevations_PolarDayAndNight(t *testing.T) {
	elev := SolarElevations(Date{2025, 6, 21}, 85, 0, 0)
	min, _, _, _ := minMax(elev)
	if min < 15 {
		t.Errorf("midnight sun minimum = %v, want > 15", min)
	}

	elev = SolarElevations(Date{2025, 12, 21}, 85, 0, 0)
	_, max, _, _ := minMax(elev)
	if max > -15 {
		t.Errorf("polar night maximum = %v, want < -15", max)
	}
}

func TestSolarElevations_TrueSolarTimeShift(t *testing.T) {
	// Moving 15 degrees west on the same clock delays the transit by
	// about an hour.
	greenwich := SolarElevations(Date{2025, 6, 21}, 51.5, 0, 0)
	west := SolarElevations(Date{2025, 6, 21}, 51.5, -15, 0)

	_, _, _, argG := minMax(greenwich)
	_, _, _, argW := minMax(west)

	if shift := argW - argG; shift < 55 || shift > 65 {
		t.Errorf("transit shift = %d minutes, want ~60", shift)
	}
}
