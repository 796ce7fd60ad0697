package astro

import "math"

// WGS84 reference ellipsoid, used for the topocentric parallax
// correction.
const (
	earthEquatorialKm = 6378.137
	earthFlattening   = 1 / 298.257223563
)

// meanLunarDistanceKm is the constant term of the lunar distance series.
const meanLunarDistanceKm = 385000.56

// lunarElements holds the fundamental arguments of the lunar theory at
// one instant, in radians: mean longitude L, mean elongation D, solar
// mean anomaly M, lunar mean anomaly Mp and argument of latitude F.
type lunarElements struct {
	L, D, M, Mp, F float64
}

// newLunarElements evaluates the fundamental-argument polynomials at T
// Julian centuries from J2000.0.
func newLunarElements(T float64) lunarElements {
	T2 := T * T
	T3 := T2 * T
	T4 := T3 * T

	return lunarElements{
		L:  degToRad(normalizeDegrees(218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000)),
		D:  degToRad(normalizeDegrees(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000)),
		M:  degToRad(normalizeDegrees(357.5291092 + 35999.0502909*T - 0.0001536*T2 + T3/24490000)),
		Mp: degToRad(normalizeDegrees(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000)),
		F:  degToRad(normalizeDegrees(93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000)),
	}
}

// lunarTerm is one periodic term of the truncated lunar theory: integer
// multipliers of D, M, Mp and F plus the amplitudes of its sine/cosine
// contribution. Longitude and latitude amplitudes are in 1e-6 degrees,
// distance amplitudes in 1e-3 km.
type lunarTerm struct {
	d, m, mp, f float64
	lon         float64
	dist        float64
}

// Leading terms of the lunar longitude and distance series
// (Meeus, Astronomical Algorithms, table 47.a).
var lunarLonDistTerms = []lunarTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -216344},
	{2, -1, 0, 0, 45758, -204586},
}

// Leading terms of the lunar latitude series (table 47.b).
var lunarLatTerms = []lunarTerm{
	{0, 0, 0, 1, 5128122, 0},
	{0, 0, 1, 1, 280602, 0},
	{0, 0, 1, -1, 277693, 0},
	{2, 0, 0, -1, 173237, 0},
	{2, 0, -1, 1, 55413, 0},
	{2, 0, -1, -1, 46271, 0},
}

// moonEcliptic sums the truncated periodic series at T Julian centuries
// from J2000.0, returning the geocentric ecliptic longitude and latitude
// in degrees and the Earth-Moon distance in km.
func moonEcliptic(T float64) (lonDeg, latDeg, distKm float64) {
	e := newLunarElements(T)

	var sumL, sumR float64
	for _, t := range lunarLonDistTerms {
		arg := t.d*e.D + t.m*e.M + t.mp*e.Mp + t.f*e.F
		sumL += t.lon * math.Sin(arg)
		sumR += t.dist * math.Cos(arg)
	}

	var sumB float64
	for _, t := range lunarLatTerms {
		arg := t.d*e.D + t.m*e.M + t.mp*e.Mp + t.f*e.F
		sumB += t.lon * math.Sin(arg)
	}

	lonDeg = normalizeDegrees(radToDeg(e.L) + sumL*1e-6)
	latDeg = sumB * 1e-6
	distKm = meanLunarDistanceKm + sumR*1e-3

	return lonDeg, latDeg, distKm
}

// observerParallaxTerms returns rho*sin(phi') and rho*cos(phi') for a
// sea-level observer at geodetic latitude latDeg, where phi' is the
// geocentric latitude on the WGS84 ellipsoid and rho the geocentric
// radius in equatorial radii.
func observerParallaxTerms(latDeg float64) (rhoSin, rhoCos float64) {
	phi := degToRad(latDeg)
	ba := 1 - earthFlattening
	u := math.Atan(ba * math.Tan(phi))

	return ba * math.Sin(u), math.Cos(u)
}

// LunarSample is one minute of the lunar ephemeris.
type LunarSample struct {
	ElevationDeg  float64 // topocentric altitude above the horizon, degrees
	DistanceKm    float64 // observer-to-moon distance after parallax scaling
	GeocentricKm  float64 // earth-center-to-moon distance
	Illuminated   float64 // illuminated fraction of the disc, 0..1
	ElongationDeg float64 // solar-lunar elongation, wrapped to [0,360)
}

// lunarSampleAt computes one geocentric-to-topocentric sample at an
// instant expressed as days since J2000.0. rhoSin and rhoCos are the
// observer parallax terms, precomputed once per series.
func lunarSampleAt(daysJ2000, rhoSin, rhoCos float64, obs Observer) LunarSample {
	T := daysJ2000 / julianCentury

	lonDeg, latDeg, distKm := moonEcliptic(T)

	// Elongation from the Sun's apparent longitude; the illuminated
	// fraction uses the full angular separation including the lunar
	// ecliptic latitude.
	sunLon := solarApparentLongitude(T)
	elong := normalizeDegrees(lonDeg - sunLon)
	sep := math.Acos(clamp(math.Cos(degToRad(latDeg))*math.Cos(degToRad(lonDeg-sunLon)), -1, 1))
	illum := (1 - math.Cos(sep)) / 2

	// Equatorial coordinates and local hour angle
	raDeg, decDeg := eclipticToEquatorial(lonDeg, latDeg, meanObliquityDeg(T))
	dec := degToRad(decDeg)
	ha := degToRad(localHourAngleDeg(daysJ2000, obs.LonDeg, raDeg))

	// Geocentric to topocentric: shift the direction vector by the
	// observer's position on the ellipsoid, in units of the equatorial
	// horizontal parallax.
	sinPar := earthEquatorialKm / distKm
	A := math.Cos(dec) * math.Sin(ha)
	B := math.Cos(dec)*math.Cos(ha) - rhoCos*sinPar
	C := math.Sin(dec) - rhoSin*sinPar
	q := math.Sqrt(A*A + B*B + C*C)

	topoHA := radToDeg(math.Atan2(A, B))
	topoDec := radToDeg(math.Asin(C / q))

	return LunarSample{
		ElevationDeg:  elevationDeg(obs.LatDeg, topoDec, topoHA),
		DistanceKm:    distKm * q,
		GeocentricKm:  distKm,
		Illuminated:   illum,
		ElongationDeg: elong,
	}
}

// LunarSamples computes the per-minute lunar ephemeris across the local
// day of date at obs, with the observer clock tzHours ahead of UTC. The
// returned slice has MinutesPerDay entries and is fully regenerated on
// each call.
func LunarSamples(date Date, obs Observer, tzHours float64) []LunarSample {
	d := date.DaysSinceJ2000() - tzHours/24
	rhoSin, rhoCos := observerParallaxTerms(obs.LatDeg)

	samples := make([]LunarSample, MinutesPerDay)
	for i := range samples {
		samples[i] = lunarSampleAt(d+float64(i)/60/24, rhoSin, rhoCos, obs)
	}

	return samples
}
