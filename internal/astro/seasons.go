package astro

import (
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/solstice"
)

// SeasonMark is an equinox or solstice instant.
type SeasonMark struct {
	Name    string
	Date    Date
	HourUTC float64 // time of day in UTC fractional hours
}

// SeasonMarks returns the four equinox and solstice instants of year in
// chronological order. The instants come back in dynamical time; the
// sub-minute offset from UTC is below the almanac's display precision.
func SeasonMarks(year int) []SeasonMark {
	events := []struct {
		name string
		jde  float64
	}{
		{"March Equinox", solstice.March(year)},
		{"June Solstice", solstice.June(year)},
		{"September Equinox", solstice.September(year)},
		{"December Solstice", solstice.December(year)},
	}

	marks := make([]SeasonMark, len(events))
	for i, ev := range events {
		y, m, d := julian.JDToCalendar(ev.jde)
		day := int(d)
		marks[i] = SeasonMark{
			Name:    ev.name,
			Date:    Date{Year: y, Month: m, Day: day},
			HourUTC: (d - float64(day)) * 24,
		}
	}

	return marks
}
