package almanac

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatClock renders fractional local hours as "HH:MM", wrapped into
// the civil day. NaN (polar kinds, absent crossings) renders "--:--".
func FormatClock(hours float64) string {
	if math.IsNaN(hours) {
		return "--:--"
	}
	m := int(math.Round(hours * 60))
	m = ((m % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatDuration renders fractional hours as "16h 38m".
func FormatDuration(hours float64) string {
	if math.IsNaN(hours) {
		return "n/a"
	}
	m := int(math.Round(hours * 60))
	return fmt.Sprintf("%dh %02dm", m/60, m%60)
}

// FormatKm renders a distance with digit grouping, e.g. "384,400 km".
func FormatKm(km float64) string {
	if math.IsNaN(km) || km <= 0 {
		return "n/a"
	}
	return groupDigits(strconv.FormatFloat(math.Round(km), 'f', 0, 64)) + " km"
}

// FormatPercent renders a 0..1 fraction as a whole percentage.
func FormatPercent(frac float64) string {
	if math.IsNaN(frac) {
		return "n/a"
	}
	frac = math.Max(0, math.Min(1, frac))
	return fmt.Sprintf("%.0f%%", frac*100)
}

// FormatLatLon renders coordinates with hemisphere letters, e.g.
// "51.4769°N 0.0005°W".
func FormatLatLon(latDeg, lonDeg float64) string {
	latHemi := "N"
	if latDeg < 0 {
		latHemi = "S"
	}
	lonHemi := "E"
	if lonDeg < 0 {
		lonHemi = "W"
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s",
		math.Abs(latDeg), latHemi, math.Abs(lonDeg), lonHemi)
}

// FormatOffset renders a UTC offset, e.g. "UTC+2" or "UTC+05:30".
func FormatOffset(tzHours float64) string {
	sign := "+"
	if tzHours < 0 {
		sign = "-"
	}
	m := int(math.Round(math.Abs(tzHours) * 60))
	if m%60 == 0 {
		return fmt.Sprintf("UTC%s%d", sign, m/60)
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, m/60, m%60)
}

// groupDigits inserts comma separators into a digit string.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
