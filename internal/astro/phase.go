package astro

// Phase is one of the eight named lunar phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

// String returns the display name of the phase.
func (p Phase) String() string {
	switch p {
	case NewMoon:
		return "New Moon"
	case WaxingCrescent:
		return "Waxing Crescent"
	case FirstQuarter:
		return "First Quarter"
	case WaxingGibbous:
		return "Waxing Gibbous"
	case FullMoon:
		return "Full Moon"
	case WaningGibbous:
		return "Waning Gibbous"
	case LastQuarter:
		return "Last Quarter"
	case WaningCrescent:
		return "Waning Crescent"
	default:
		return "Unknown"
	}
}

// ClassifyPhase buckets a solar-lunar elongation, in degrees, into the
// eight named phases. New and Full own a 10-degree window either side of
// 0 and 180; the quarters own 5 degrees either side of 90 and 270; the
// crescent and gibbous phases fill the arcs between.
func ClassifyPhase(elongDeg float64) Phase {
	e := normalizeDegrees(elongDeg)
	switch {
	case e >= 350 || e < 10:
		return NewMoon
	case e < 85:
		return WaxingCrescent
	case e < 95:
		return FirstQuarter
	case e < 170:
		return WaxingGibbous
	case e < 190:
		return FullMoon
	case e < 265:
		return WaningGibbous
	case e < 275:
		return LastQuarter
	default:
		return WaningCrescent
	}
}
