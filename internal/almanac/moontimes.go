package almanac

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// MoonTimes describes the moon's horizon behavior across one local
// day, read off the per-minute elevation series. Either crossing may
// be absent: the lunar day runs closer to 25 hours, so about once a
// month a civil day has no moonrise, and once a month no moonset.
type MoonTimes struct {
	Rise float64 // local clock hours of the rising crossing, NaN when absent
	Set  float64 // local clock hours of the setting crossing, NaN when absent

	AlwaysUp   bool // above the horizon for the whole day
	AlwaysDown bool // below the horizon for the whole day

	MaxElevationDeg float64
	MaxElevationMin int // minute index of the day's maximum
}

// HasRise reports whether a rising crossing was found.
func (mt MoonTimes) HasRise() bool { return !math.IsNaN(mt.Rise) }

// HasSet reports whether a setting crossing was found.
func (mt MoonTimes) HasSet() bool { return !math.IsNaN(mt.Set) }

// MoonTimesFromSamples scans a day's lunar series for crossings of the
// geometric horizon. Crossing instants are refined by linear
// interpolation between the bracketing minutes. When several crossings
// of one kind occur, the first of each is kept.
func MoonTimesFromSamples(samples []astro.LunarSample) MoonTimes {
	mt := MoonTimes{Rise: math.NaN(), Set: math.NaN()}
	if len(samples) == 0 {
		return mt
	}

	mt.MaxElevationDeg = samples[0].ElevationDeg
	anyUp := samples[0].ElevationDeg >= 0
	anyDown := samples[0].ElevationDeg < 0

	for i := 1; i < len(samples); i++ {
		prev := samples[i-1].ElevationDeg
		curr := samples[i].ElevationDeg

		if curr > mt.MaxElevationDeg {
			mt.MaxElevationDeg = curr
			mt.MaxElevationMin = i
		}
		if curr >= 0 {
			anyUp = true
		} else {
			anyDown = true
		}

		if prev < 0 && curr >= 0 && math.IsNaN(mt.Rise) {
			mt.Rise = crossingHours(i, prev, curr)
		}
		if prev >= 0 && curr < 0 && math.IsNaN(mt.Set) {
			mt.Set = crossingHours(i, prev, curr)
		}
	}

	mt.AlwaysUp = !anyDown
	mt.AlwaysDown = !anyUp

	return mt
}

// crossingHours interpolates the horizon crossing between minutes i-1
// and i. The elevations bracket zero, so the denominator cannot vanish.
func crossingHours(i int, prev, curr float64) float64 {
	fraction := -prev / (curr - prev)
	return (float64(i-1) + fraction) / 60
}
