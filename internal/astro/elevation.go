package astro

import "math"

// MinutesPerDay is the fixed resolution of the per-minute series.
const MinutesPerDay = 1440

// SolarElevations samples the solar elevation angle, in degrees, at each
// of the 1440 local clock minutes of date. The slowly varying series
// coefficients are evaluated once for the day; declination and equation
// of time are recomputed at every minute. The returned slice is fully
// regenerated on each call.
func SolarElevations(date Date, latDeg, lonDeg, tzHours float64) []float64 {
	d := date.DaysSinceJ2000() - tzHours/24
	tm := newSolarTerms(d)
	tst := transitOffsetMin(lonDeg, tzHours)

	lat := degToRad(latDeg)
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	elev := make([]float64, MinutesPerDay)
	for i := range elev {
		st := tm.state(d, float64(i)/60)

		// Minutes past midnight plus the true-solar-time correction,
		// at 4 minutes per degree, zeroed on the local meridian.
		haRad := degToRad((float64(i)+st.EqTimeMin+tst)/4 - 180)

		sinEl := clamp(sinLat*st.SinDecl+cosLat*st.CosDecl*math.Cos(haRad), -1, 1)
		elev[i] = radToDeg(math.Asin(sinEl))
	}

	return elev
}
