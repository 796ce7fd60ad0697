package almanac

import (
	"math"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
)

// elevSeries builds a synthetic lunar day from an elevation function.
func elevSeries(fn func(i int) float64) []astro.LunarSample {
	samples := make([]astro.LunarSample, astro.MinutesPerDay)
	for i := range samples {
		samples[i].ElevationDeg = fn(i)
	}
	return samples
}

func TestMoonTimesFromSamples_RiseOnly(t *testing.T) {
	// Linear ramp through zero at minute 600.
	mt := MoonTimesFromSamples(elevSeries(func(i int) float64 {
		return float64(i-600) / 10
	}))

	if !mt.HasRise() {
		t.Fatal("expected a rising crossing")
	}
	if math.Abs(mt.Rise-10.0) > 1e-9 {
		t.Errorf("rise = %v, want 10.0", mt.Rise)
	}
	if mt.HasSet() {
		t.Errorf("unexpected setting crossing at %v", mt.Set)
	}
	if mt.AlwaysUp || mt.AlwaysDown {
		t.Errorf("always flags = %v/%v, want false/false", mt.AlwaysUp, mt.AlwaysDown)
	}
	if mt.MaxElevationMin != astro.MinutesPerDay-1 {
		t.Errorf("max minute = %d, want %d", mt.MaxElevationMin, astro.MinutesPerDay-1)
	}
}

func TestMoonTimesFromSamples_RiseAndSet(t *testing.T) {
	// Triangle peaking at minute 720, above the horizon for 600 minutes.
	mt := MoonTimesFromSamples(elevSeries(func(i int) float64 {
		return 5 - math.Abs(float64(i-720))/60
	}))

	if !mt.HasRise() || !mt.HasSet() {
		t.Fatalf("expected both crossings, got rise=%v set=%v", mt.Rise, mt.Set)
	}
	if math.Abs(mt.Rise-7.0) > 1e-9 {
		t.Errorf("rise = %v, want 7.0", mt.Rise)
	}
	if math.Abs(mt.Set-17.0) > 1e-9 {
		t.Errorf("set = %v, want 17.0", mt.Set)
	}
	if mt.MaxElevationMin != 720 {
		t.Errorf("max minute = %d, want 720", mt.MaxElevationMin)
	}
	if mt.MaxElevationDeg != 5 {
		t.Errorf("max elevation = %v, want 5", mt.MaxElevationDeg)
	}
}

func TestMoonTimesFromSamples_FirstCrossingWins(t *testing.T) {
	// Two rises (at minutes ~100 and ~300) and one set between them.
	mt := MoonTimesFromSamples(elevSeries(func(i int) float64 {
		switch {
		case i < 100:
			return -1
		case i < 200:
			return 1
		case i < 300:
			return -1
		default:
			return 1
		}
	}))

	if math.Abs(mt.Rise-(99.5/60)) > 1e-9 {
		t.Errorf("rise = %v, want %v", mt.Rise, 99.5/60)
	}
	if math.Abs(mt.Set-(199.5/60)) > 1e-9 {
		t.Errorf("set = %v, want %v", mt.Set, 199.5/60)
	}
}

func TestMoonTimesFromSamples_AlwaysUp(t *testing.T) {
	mt := MoonTimesFromSamples(elevSeries(func(i int) float64 { return 10 }))

	if !mt.AlwaysUp {
		t.Error("expected always up")
	}
	if mt.AlwaysDown {
		t.Error("unexpected always down")
	}
	if mt.HasRise() || mt.HasSet() {
		t.Errorf("unexpected crossings rise=%v set=%v", mt.Rise, mt.Set)
	}
}

func TestMoonTimesFromSamples_AlwaysDown(t *testing.T) {
	mt := MoonTimesFromSamples(elevSeries(func(i int) float64 { return -10 }))

	if !mt.AlwaysDown {
		t.Error("expected always down")
	}
	if mt.AlwaysUp {
		t.Error("unexpected always up")
	}
	if mt.HasRise() || mt.HasSet() {
		t.Errorf("unexpected crossings rise=%v set=%v", mt.Rise, mt.Set)
	}
}

func TestMoonTimesFromSamples_Empty(t *testing.T) {
	mt := MoonTimesFromSamples(nil)

	if mt.HasRise() || mt.HasSet() {
		t.Errorf("unexpected crossings on empty input")
	}
	if mt.AlwaysUp || mt.AlwaysDown {
		t.Errorf("unexpected always flags on empty input")
	}
}

func TestMoonTimesFromSamples_RealSeries(t *testing.T) {
	p := londonParams()
	samples := astro.LunarSamples(p.Date, p.Observer(), p.TZHours)
	mt := MoonTimesFromSamples(samples)

	// At London's latitude the moon crosses the horizon every day.
	if !mt.HasRise() && !mt.HasSet() {
		t.Fatal("expected at least one horizon crossing")
	}
	if mt.AlwaysUp || mt.AlwaysDown {
		t.Errorf("always flags = %v/%v, want false/false", mt.AlwaysUp, mt.AlwaysDown)
	}
	if mt.HasRise() && (mt.Rise < 0 || mt.Rise >= 24) {
		t.Errorf("rise = %v, want within [0, 24)", mt.Rise)
	}
	if mt.HasSet() && (mt.Set < 0 || mt.Set >= 24) {
		t.Errorf("set = %v, want within [0, 24)", mt.Set)
	}

	// The recorded maximum matches a direct scan of the series.
	maxEl := samples[0].ElevationDeg
	for _, s := range samples {
		if s.ElevationDeg > maxEl {
			maxEl = s.ElevationDeg
		}
	}
	if mt.MaxElevationDeg != maxEl {
		t.Errorf("max elevation = %v, want %v", mt.MaxElevationDeg, maxEl)
	}
}

func TestMoonTimesFromSamples_CrossingNearZero(t *testing.T) {
	p := londonParams()
	samples := astro.LunarSamples(p.Date, p.Observer(), p.TZHours)
	mt := MoonTimesFromSamples(samples)

	// The moon climbs at most ~0.26° per minute, so the samples
	// bracketing an interpolated crossing both sit near zero.
	checkNearZero := func(label string, hours float64) {
		j := int(hours * 60)
		if j < 0 || j+1 >= len(samples) {
			return
		}
		for _, el := range []float64{samples[j].ElevationDeg, samples[j+1].ElevationDeg} {
			if math.Abs(el) > 0.3 {
				t.Errorf("%s at %v brackets elevation %v, want near zero", label, hours, el)
			}
		}
	}

	if mt.HasRise() {
		checkNearZero("rise", mt.Rise)
	}
	if mt.HasSet() {
		checkNearZero("set", mt.Set)
	}
}
