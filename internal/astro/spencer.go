package astro

import "math"

// SpencerDeclination calculates the solar declination in radians for a
// calendar date using Spencer's seven-term Fourier series in the day
// angle gamma = 2*pi*(dayOfYear-1)/daysInYear.
func SpencerDeclination(date Date) float64 {
	gamma := 2 * math.Pi * float64(date.DayOfYear()-1) / float64(DaysInYear(date.Year))

	return 0.006918 -
		0.399912*math.Cos(gamma) +
		0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) +
		0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) +
		0.001480*math.Sin(3*gamma)
}

// SpencerModel is the simplified day-length strategy: one Fourier-series
// declination evaluation per date, no iteration, and no longitude or
// timezone dependence. It ignores the equation of time and the true
// solar transit offset, so rise and set come out symmetric about 12:00
// on the local clock; the trade-off buys a single closed-form
// evaluation.
type SpencerModel struct{}

// Name implements DayLengthModel.
func (SpencerModel) Name() string { return "spencer" }

// DayLength implements DayLengthModel. lonDeg and tzHours are accepted
// for interface compatibility and have no effect on this model.
func (SpencerModel) DayLength(date Date, latDeg, lonDeg, tzHours, horizonDeg float64) Daylight {
	decl := SpencerDeclination(date)
	lat := degToRad(latDeg)

	cosH := (math.Sin(degToRad(horizonDeg)) - math.Sin(lat)*math.Sin(decl)) /
		(math.Cos(lat) * math.Cos(decl))
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
	length := 2 * H / 15

	return Daylight{
		Kind:         DaylightOk,
		DayLengthHrs: length,
		SunriseHours: 12 - length/2,
		SunsetHours:  12 + length/2,
	}
}
