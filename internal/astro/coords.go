// Package astro implements the positional astronomy behind the almanac:
// calendar and Julian day handling, solar position, daylight solving,
// per-minute elevation series, and a truncated lunar ephemeris.
//
// Angles cross the package boundary in degrees and times of day in
// fractional hours unless a name says otherwise. Trigonometry runs in
// radians internally.
package astro

import "math"

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalizeDegrees wraps an angle to [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// wrapHours wraps a time of day to [0, 24).
func wrapHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// clamp limits v to the closed interval [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// gmstDeg calculates Greenwich Mean Sidereal Time in degrees for an
// instant expressed as days since the J2000.0 epoch.
// Uses the IAU 1982 formula.
func gmstDeg(daysJ2000 float64) float64 {
	T := daysJ2000 / julianCentury

	// GMST = 280.46061837 + 360.98564736629*(JD-2451545) + 0.000387933*T^2 - T^3/38710000
	gmst := 280.46061837 +
		360.98564736629*daysJ2000 +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeDegrees(gmst)
}

// localHourAngleDeg calculates the local hour angle, in degrees, of a body
// at right ascension raDeg for an observer at longitude lonDeg (east
// positive).
func localHourAngleDeg(daysJ2000, lonDeg, raDeg float64) float64 {
	return normalizeDegrees(gmstDeg(daysJ2000) + lonDeg - raDeg)
}

// meanObliquityDeg calculates the mean obliquity of the ecliptic in
// degrees at T Julian centuries since J2000.0.
func meanObliquityDeg(T float64) float64 {
	return 23.439291 - 0.0130042*T - 1.64e-7*T*T + 5.04e-7*T*T*T
}

// eclipticToEquatorial converts ecliptic longitude and latitude to right
// ascension and declination, all in degrees, for the given obliquity of
// the ecliptic epsDeg.
func eclipticToEquatorial(lonDeg, latDeg, epsDeg float64) (raDeg, decDeg float64) {
	lon := degToRad(lonDeg)
	lat := degToRad(latDeg)
	eps := degToRad(epsDeg)

	sinDec := math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon)
	dec := math.Asin(clamp(sinDec, -1, 1))

	y := math.Sin(lon)*math.Cos(eps) - math.Tan(lat)*math.Sin(eps)
	ra := math.Atan2(y, math.Cos(lon))

	return normalizeDegrees(radToDeg(ra)), radToDeg(dec)
}

// elevationDeg calculates the altitude above the horizon, in degrees, of
// a body at declination decDeg seen from latitude latDeg when its local
// hour angle is haDeg.
//
//	sin(el) = sin(dec)*sin(lat) + cos(dec)*cos(lat)*cos(ha)
func elevationDeg(latDeg, decDeg, haDeg float64) float64 {
	lat := degToRad(latDeg)
	dec := degToRad(decDeg)
	ha := degToRad(haDeg)

	sinEl := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	return radToDeg(math.Asin(clamp(sinEl, -1, 1)))
}
