// Package almanac aggregates the astro engine's outputs into the day
// and year reports the terminal front ends consume.
package almanac

import (
	"fmt"

	"github.com/litescript/ls-almanac/internal/astro"
)

// noonIndex is the minute used for the report's headline lunar figures.
const noonIndex = astro.MinutesPerDay / 2

// Params collects everything one computation needs: the observer, the
// clock offset, the date and the day-length strategy.
type Params struct {
	Name       string // display label for the location, optional
	LatDeg     float64
	LonDeg     float64
	TZHours    float64
	HorizonDeg float64
	Date       astro.Date
	Model      astro.DayLengthModel
}

// DefaultParams returns parameters for the Royal Observatory at
// Greenwich on today's date with the iterative model.
func DefaultParams() Params {
	return Params{
		Name:       "Greenwich",
		LatDeg:     51.4769,
		LonDeg:     -0.0005,
		TZHours:    0,
		HorizonDeg: astro.DefaultHorizonDeg,
		Date:       astro.Today(),
		Model:      astro.IterativeModel{},
	}
}

// Observer returns the astro-layer observer for the parameters.
func (p Params) Observer() astro.Observer {
	return astro.Observer{LatDeg: p.LatDeg, LonDeg: p.LonDeg}
}

// ModelName returns the active day-length model's name. A nil model
// reads as the iterative default.
func (p Params) ModelName() string {
	if p.Model == nil {
		return astro.IterativeModel{}.Name()
	}
	return p.Model.Name()
}

// Validate checks every parameter against its domain. The engine never
// runs on parameters that fail here.
func (p Params) Validate() error {
	if err := p.Date.Validate(); err != nil {
		return err
	}
	if p.LatDeg < -90 || p.LatDeg > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", p.LatDeg)
	}
	if p.LonDeg < -180 || p.LonDeg > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", p.LonDeg)
	}
	if p.TZHours < -14 || p.TZHours > 14 {
		return fmt.Errorf("utc offset %.2f out of range [-14, 14]", p.TZHours)
	}
	if p.HorizonDeg < -45 || p.HorizonDeg > 45 {
		return fmt.Errorf("horizon angle %.2f out of range [-45, 45]", p.HorizonDeg)
	}
	return nil
}

// Report is one complete almanac computation: the daylight solve, the
// per-minute solar and lunar series, the lunar rise/set crossings, the
// headline lunar figures at local noon, and the year's season marks.
type Report struct {
	Params Params

	Daylight  astro.Daylight
	SolarNoon float64 // local clock hours of solar transit

	SolarElevations []float64
	MaxElevationDeg float64
	MaxElevationMin int // minute index of the solar maximum

	Moon      []astro.LunarSample
	MoonTimes MoonTimes

	Phase            astro.Phase
	Illuminated      float64
	MoonDistanceKm   float64 // topocentric
	MoonGeocentricKm float64
	ElongationDeg    float64

	Seasons []astro.SeasonMark
}

// Compute runs the full engine for p. A nil Model selects the
// iterative strategy.
func Compute(p Params) *Report {
	if p.Model == nil {
		p.Model = astro.IterativeModel{}
	}

	r := &Report{Params: p}

	r.Daylight = p.Model.DayLength(p.Date, p.LatDeg, p.LonDeg, p.TZHours, p.HorizonDeg)
	r.SolarNoon = astro.SolarNoon(p.Date, p.LonDeg, p.TZHours)

	r.SolarElevations = astro.SolarElevations(p.Date, p.LatDeg, p.LonDeg, p.TZHours)
	for i, el := range r.SolarElevations {
		if i == 0 || el > r.MaxElevationDeg {
			r.MaxElevationDeg = el
			r.MaxElevationMin = i
		}
	}

	r.Moon = astro.LunarSamples(p.Date, p.Observer(), p.TZHours)
	r.MoonTimes = MoonTimesFromSamples(r.Moon)

	noon := r.Moon[noonIndex]
	r.Phase = astro.ClassifyPhase(noon.ElongationDeg)
	r.Illuminated = noon.Illuminated
	r.MoonDistanceKm = noon.DistanceKm
	r.MoonGeocentricKm = noon.GeocentricKm
	r.ElongationDeg = noon.ElongationDeg

	r.Seasons = astro.SeasonMarks(p.Date.Year)

	return r
}
