package astro

import (
	"fmt"
	"math"
)

// DefaultHorizonDeg is the standard horizon-angle correction: -50
// arcminutes, covering mean atmospheric refraction plus the apparent
// solar radius.
const DefaultHorizonDeg = -0.83

const (
	// maxRefineIterations bounds the fixed-point refinement of rise and
	// set. Five passes reach sub-second accuracy wherever the sun
	// actually crosses the horizon.
	maxRefineIterations = 5

	// refineTolerance is the convergence threshold in hours (0.1 s).
	refineTolerance = 1.0 / 36000
)

// DaylightKind tags the outcome of a sunrise/sunset solve.
type DaylightKind int

const (
	// DaylightOk means the sun crosses the horizon angle: sunrise,
	// sunset and day length are all defined.
	DaylightOk DaylightKind = iota
	// DaylightPolarDay means the sun stays above the horizon angle all
	// day: day length 24h, rise and set undefined.
	DaylightPolarDay
	// DaylightPolarNight means the sun never reaches the horizon angle:
	// day length 0, rise and set undefined.
	DaylightPolarNight
	// DaylightIndeterminate means the hour-angle ratio was numerically
	// undefined (numerator and denominator vanish together); day length
	// is reported as 12h.
	DaylightIndeterminate
)

// String returns a short lowercase label for the kind.
func (k DaylightKind) String() string {
	switch k {
	case DaylightOk:
		return "ok"
	case DaylightPolarDay:
		return "polar day"
	case DaylightPolarNight:
		return "polar night"
	case DaylightIndeterminate:
		return "indeterminate"
	default:
		return "unknown"
	}
}

// Daylight is the result of a sunrise/sunset solve. SunriseHours and
// SunsetHours are local clock times in [0,24) and are meaningful only
// when Kind is DaylightOk; for the polar kinds they are NaN.
type Daylight struct {
	Kind         DaylightKind
	DayLengthHrs float64
	SunriseHours float64
	SunsetHours  float64
}

// HasRiseSet reports whether sunrise and sunset are defined.
func (dl Daylight) HasRiseSet() bool {
	return dl.Kind == DaylightOk
}

// ComputeDaylight solves sunrise, sunset and day length on date for an
// observer at latDeg/lonDeg whose clock runs tzHours ahead of UTC,
// using horizonDeg as the horizon-angle correction.
//
// The solve starts from the solar state at local noon, then refines
// rise and set independently with a short fixed-point iteration: the
// declination and equation of time are recomputed at each current
// estimate until both times move by less than refineTolerance.
func ComputeDaylight(date Date, latDeg, lonDeg, tzHours, horizonDeg float64) Daylight {
	d := date.DaysSinceJ2000() - tzHours/24
	tm := newSolarTerms(d)
	tst := transitOffsetMin(lonDeg, tzHours)

	lat := degToRad(latDeg)
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	sinHorizon := math.Sin(degToRad(horizonDeg))

	// The hour-angle cosine at local noon decides the polar cases.
	st := tm.state(d, 12)
	cosH := (sinHorizon - sinLat*st.SinDecl) / (cosLat * st.CosDecl)
	switch {
	case math.IsNaN(cosH):
		return Daylight{
			Kind:         DaylightIndeterminate,
			DayLengthHrs: 12,
			SunriseHours: math.NaN(),
			SunsetHours:  math.NaN(),
		}
	case cosH >= 1:
		return Daylight{
			Kind:         DaylightPolarNight,
			DayLengthHrs: 0,
			SunriseHours: math.NaN(),
			SunsetHours:  math.NaN(),
		}
	case cosH <= -1:
		return Daylight{
			Kind:         DaylightPolarDay,
			DayLengthHrs: 24,
			SunriseHours: math.NaN(),
			SunsetHours:  math.NaN(),
		}
	}

	H := radToDeg(math.Acos(cosH))
	rise := 12 - H/15 - (st.EqTimeMin+tst)/60
	set := 12 + H/15 - (st.EqTimeMin+tst)/60

	for i := 0; i < maxRefineIterations; i++ {
		newRise, riseOK := tm.solveCrossing(d, rise, -1, sinLat, cosLat, sinHorizon, tst)
		newSet, setOK := tm.solveCrossing(d, set, +1, sinLat, cosLat, sinHorizon, tst)
		if !riseOK || !setOK {
			// Keep the last valid estimates.
			break
		}
		riseDelta := math.Abs(newRise - rise)
		setDelta := math.Abs(newSet - set)
		rise, set = newRise, newSet
		if riseDelta < refineTolerance && setDelta < refineTolerance {
			break
		}
	}

	rise = wrapHours(rise)
	set = wrapHours(set)

	return Daylight{
		Kind:         DaylightOk,
		DayLengthHrs: wrapHours(set - rise),
		SunriseHours: rise,
		SunsetHours:  set,
	}
}

// solveCrossing re-solves one horizon crossing from the solar state at
// the current estimate. sign is -1 for sunrise and +1 for sunset. The
// second return is false when the recomputed hour-angle cosine leaves
// [-1,1], in which case the caller keeps its previous estimate.
func (tm solarTerms) solveCrossing(d, hours, sign, sinLat, cosLat, sinHorizon, tst float64) (float64, bool) {
	st := tm.state(d, hours)
	cosH := (sinHorizon - sinLat*st.SinDecl) / (cosLat * st.CosDecl)
	if math.IsNaN(cosH) || cosH < -1 || cosH > 1 {
		return hours, false
	}

	H := radToDeg(math.Acos(cosH))
	return 12 + sign*H/15 - (st.EqTimeMin+tst)/60, true
}

// DayLengthModel is a named strategy for solving day length. Two
// implementations exist: the full iterative model and the simplified
// Spencer declination model.
type DayLengthModel interface {
	// Name identifies the model in flags and reports.
	Name() string
	// DayLength solves sunrise, sunset and day length on date.
	DayLength(date Date, latDeg, lonDeg, tzHours, horizonDeg float64) Daylight
}

// IterativeModel is the full-precision strategy: per-instant declination
// and equation of time, longitude- and timezone-aware, with fixed-point
// refinement of rise and set.
type IterativeModel struct{}

// Name implements DayLengthModel.
func (IterativeModel) Name() string { return "iterative" }

// DayLength implements DayLengthModel.
func (IterativeModel) DayLength(date Date, latDeg, lonDeg, tzHours, horizonDeg float64) Daylight {
	return ComputeDaylight(date, latDeg, lonDeg, tzHours, horizonDeg)
}

// ModelByName returns the day-length model registered under name.
// Known names are "iterative" and "spencer"; the empty string selects
// the iterative model.
func ModelByName(name string) (DayLengthModel, error) {
	switch name {
	case "", "iterative":
		return IterativeModel{}, nil
	case "spencer":
		return SpencerModel{}, nil
	default:
		return nil, fmt.Errorf("unknown day length model %q", name)
	}
}
