package astro

import "math"

// solarTerms holds the slowly varying coefficients of the solar series:
// sine and cosine of the obliquity of the ecliptic and the leading
// equation-of-center amplitudes. They drift over centuries, not hours,
// so they are evaluated once per computation at the UTC-midnight epoch
// offset and reused for every sample of that day.
type solarTerms struct {
	sinObliquity float64
	cosObliquity float64
	c1           float64
	c2           float64
}

// newSolarTerms evaluates the coefficient polynomials at d days since
// J2000.0, taken at UTC midnight of the target date.
func newSolarTerms(d float64) solarTerms {
	obliquity := 23.439291111 - 3.560347e-7*d - 1.2285e-16*d*d + 1.0335e-20*d*d*d
	obliquityRad := degToRad(obliquity)

	return solarTerms{
		sinObliquity: math.Sin(obliquityRad),
		cosObliquity: math.Cos(obliquityRad),
		c1:           1.914600 - 1.3188e-7*d - 1.049e-14*d*d,
		c2:           0.019993 - 2.7652e-9*d,
	}
}

// SolarState is the ephemeris core output for a single instant: the sine
// and cosine of the solar declination and the equation of time.
//
// Declination and equation of time both drift non-negligibly within one
// day, so a SolarState is recomputed at every sample time rather than
// shared across samples.
type SolarState struct {
	SinDecl   float64 // sine of solar declination
	CosDecl   float64 // cosine of solar declination (non-negative)
	EqTimeMin float64 // equation of time in minutes (positive = sundial fast)
}

// DeclinationDeg returns the solar declination in degrees.
func (s SolarState) DeclinationDeg() float64 {
	return radToDeg(math.Asin(clamp(s.SinDecl, -1, 1)))
}

// state evaluates the solar series at localHours clock time on the day
// whose UTC-midnight epoch offset is d.
func (tm solarTerms) state(d, localHours float64) SolarState {
	t := d + localHours/24

	// Mean anomaly of the Sun (degrees)
	M := 357.52910 + 0.985600282*t - 1.1686e-13*t*t - 9.85e-21*t*t*t
	Mrad := degToRad(M)

	// Mean longitude of the Sun (degrees)
	L := normalizeDegrees(280.46645 + 0.98564736*t + 2.2727e-13*t*t)

	// Ecliptic longitude: mean longitude plus the equation of center
	lonRad := degToRad(L +
		tm.c1*math.Sin(Mrad) +
		tm.c2*math.Sin(2*Mrad) +
		0.000290*math.Sin(3*Mrad))

	sinDecl := clamp(tm.sinObliquity*math.Sin(lonRad), -1, 1)
	cosDecl := math.Sqrt(1 - sinDecl*sinDecl)

	// Right Ascension in hours
	raHours := radToDeg(math.Atan2(tm.cosObliquity*math.Sin(lonRad), math.Cos(lonRad))) / 15

	// Equation of time: mean minus apparent solar time, wrapped into
	// (-12, 12] hours so the sign does not flip at local midnight.
	eq := L/15 - raHours
	for eq <= -12 {
		eq += 24
	}
	for eq > 12 {
		eq -= 24
	}

	return SolarState{
		SinDecl:   sinDecl,
		CosDecl:   cosDecl,
		EqTimeMin: 60 * eq,
	}
}

// SolarStateAt evaluates the solar ephemeris core at the given local
// clock time on date, for an observer whose clock runs tzHours ahead of
// UTC.
func SolarStateAt(date Date, tzHours, localHours float64) SolarState {
	d := date.DaysSinceJ2000() - tzHours/24
	return newSolarTerms(d).state(d, localHours)
}

// transitOffsetMin calculates the true-solar-time offset in minutes for
// a site at lonDeg east longitude with a clock tzHours ahead of UTC:
// 4 minutes per degree of longitude less the timezone displacement.
func transitOffsetMin(lonDeg, tzHours float64) float64 {
	return 4*lonDeg - 60*tzHours
}

// SolarNoon returns the local clock time, in fractional hours, of the
// solar transit on date.
func SolarNoon(date Date, lonDeg, tzHours float64) float64 {
	d := date.DaysSinceJ2000() - tzHours/24
	st := newSolarTerms(d).state(d, 12)
	return wrapHours(12 - (st.EqTimeMin+transitOffsetMin(lonDeg, tzHours))/60)
}

// solarApparentLongitude calculates the Sun's apparent ecliptic
// longitude in degrees at T Julian centuries from J2000.0.
// Uses a simplified ephemeris based on the Astronomical Almanac;
// accuracy ~0.01 degrees, sufficient for elongation and phase work.
func solarApparentLongitude(T float64) float64 {
	// Mean longitude of the Sun (degrees)
	L0 := normalizeDegrees(280.46646 + 36000.76983*T + 0.0003032*T*T)

	// Mean anomaly of the Sun (degrees)
	M := degToRad(normalizeDegrees(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Sun's equation of center (degrees)
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(M)
	C += (0.019993 - 0.000101*T) * math.Sin(2*M)
	C += 0.000289 * math.Sin(3*M)

	// Apparent longitude (correcting for aberration and nutation)
	omega := 125.04 - 1934.136*T

	return normalizeDegrees(L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega)))
}
