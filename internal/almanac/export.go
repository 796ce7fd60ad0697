package almanac

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// ReportExport is the JSON-serializable representation of a day report.
type ReportExport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Location    LocationExport `json:"location"`
	Date        string         `json:"date"`
	Model       string         `json:"model"`
	Daylight    DaylightExport `json:"daylight"`
	Solar       SolarExport    `json:"solar"`
	Moon        MoonExport     `json:"moon"`
	Seasons     []SeasonExport `json:"seasons,omitempty"`
}

// LocationExport identifies the observer.
type LocationExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	UTCOffset float64 `json:"utc_offset_hours"`
}

// DaylightExport is the JSON-friendly daylight solve. Sunrise and
// sunset are omitted for the polar kinds.
type DaylightExport struct {
	Kind        string  `json:"kind"`
	LengthHours float64 `json:"length_hours"`
	Sunrise     string  `json:"sunrise,omitempty"`
	Sunset      string  `json:"sunset,omitempty"`
}

// SolarExport carries the day's solar transit and peak.
type SolarExport struct {
	Noon            string  `json:"noon"`
	MaxElevationDeg float64 `json:"max_elevation_deg"`
}

// MoonExport carries the headline lunar figures and crossings.
type MoonExport struct {
	Phase         string  `json:"phase"`
	Illuminated   float64 `json:"illuminated"`
	DistanceKm    float64 `json:"distance_km"`
	ElongationDeg float64 `json:"elongation_deg"`
	Moonrise      string  `json:"moonrise,omitempty"`
	Moonset       string  `json:"moonset,omitempty"`
	AlwaysUp      bool    `json:"always_up,omitempty"`
	AlwaysDown    bool    `json:"always_down,omitempty"`
}

// SeasonExport is one equinox or solstice row.
type SeasonExport struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	TimeUTC string `json:"time_utc"`
}

// ExportReport converts a report to its exportable form.
func ExportReport(r *Report, generatedAt time.Time) *ReportExport {
	if r == nil {
		return &ReportExport{GeneratedAt: generatedAt}
	}

	export := &ReportExport{
		GeneratedAt: generatedAt,
		Location: LocationExport{
			Name:      r.Params.Name,
			Latitude:  r.Params.LatDeg,
			Longitude: r.Params.LonDeg,
			UTCOffset: r.Params.TZHours,
		},
		Date:  r.Params.Date.String(),
		Model: r.Params.ModelName(),
		Daylight: DaylightExport{
			Kind:        r.Daylight.Kind.String(),
			LengthHours: r.Daylight.DayLengthHrs,
		},
		Solar: SolarExport{
			Noon:            FormatClock(r.SolarNoon),
			MaxElevationDeg: r.MaxElevationDeg,
		},
		Moon: MoonExport{
			Phase:         r.Phase.String(),
			Illuminated:   r.Illuminated,
			DistanceKm:    r.MoonDistanceKm,
			ElongationDeg: r.ElongationDeg,
			AlwaysUp:      r.MoonTimes.AlwaysUp,
			AlwaysDown:    r.MoonTimes.AlwaysDown,
		},
	}

	if r.Daylight.HasRiseSet() {
		export.Daylight.Sunrise = FormatClock(r.Daylight.SunriseHours)
		export.Daylight.Sunset = FormatClock(r.Daylight.SunsetHours)
	}
	if r.MoonTimes.HasRise() {
		export.Moon.Moonrise = FormatClock(r.MoonTimes.Rise)
	}
	if r.MoonTimes.HasSet() {
		export.Moon.Moonset = FormatClock(r.MoonTimes.Set)
	}

	for _, s := range r.Seasons {
		export.Seasons = append(export.Seasons, SeasonExport{
			Name:    s.Name,
			Date:    s.Date.String(),
			TimeUTC: FormatClock(s.HourUTC),
		})
	}

	return export
}

// WriteJSON writes the export as indented JSON to the given writer.
func (e *ReportExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSolarCSV writes the per-minute solar elevation series.
func WriteSolarCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"minute", "clock", "elevation_deg"}); err != nil {
		return err
	}
	for i, el := range r.SolarElevations {
		row := []string{
			strconv.Itoa(i),
			FormatClock(float64(i) / 60),
			strconv.FormatFloat(el, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLunarCSV writes the per-minute lunar series.
func WriteLunarCSV(w io.Writer, r *Report) error {
	cw := csv.NewWriter(w)
	header := []string{"minute", "clock", "elevation_deg", "distance_km", "illuminated", "elongation_deg"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, s := range r.Moon {
		row := []string{
			strconv.Itoa(i),
			FormatClock(float64(i) / 60),
			strconv.FormatFloat(s.ElevationDeg, 'f', 3, 64),
			strconv.FormatFloat(s.DistanceKm, 'f', 1, 64),
			strconv.FormatFloat(s.Illuminated, 'f', 4, 64),
			strconv.FormatFloat(s.ElongationDeg, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYearCSV writes the day-length series for a year. Sunrise and
// sunset columns are empty on polar days.
func WriteYearCSV(w io.Writer, ys *YearSeries) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "day_of_year", "kind", "length_hours", "sunrise_hours", "sunset_hours"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, day := range ys.Days {
		rise, set := "", ""
		if day.Daylight.HasRiseSet() {
			rise = strconv.FormatFloat(day.Daylight.SunriseHours, 'f', 4, 64)
			set = strconv.FormatFloat(day.Daylight.SunsetHours, 'f', 4, 64)
		}
		row := []string{
			day.Date.String(),
			strconv.Itoa(day.Date.DayOfYear()),
			day.Daylight.Kind.String(),
			strconv.FormatFloat(day.Daylight.DayLengthHrs, 'f', 4, 64),
			rise,
			set,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// reportRule is the separator width of the text report.
const reportRule = 58

// WriteReport writes the fixed-format text report to the given writer.
func WriteReport(w io.Writer, r *Report, now time.Time) {
	name := r.Params.Name
	if name == "" {
		name = "Observer"
	}

	fmt.Fprintf(w, "Almanac — %s  %s  %s\n",
		name, FormatLatLon(r.Params.LatDeg, r.Params.LonDeg), FormatOffset(r.Params.TZHours))
	fmt.Fprintf(w, "Date %s (day %d) · model %s · horizon %.2f°\n",
		r.Params.Date, r.Params.Date.DayOfYear(), r.Params.ModelName(), r.Params.HorizonDeg)
	fmt.Fprintln(w, strings.Repeat("─", reportRule))

	length := FormatDuration(r.Daylight.DayLengthHrs)
	if !r.Daylight.HasRiseSet() {
		length += " (" + r.Daylight.Kind.String() + ")"
	}

	fmt.Fprintf(w, "%-12s %-12s %-13s %s\n", "Sunrise", FormatClock(r.Daylight.SunriseHours),
		"Moonrise", moonTimeLabel(r.MoonTimes.Rise, r.MoonTimes))
	fmt.Fprintf(w, "%-12s %-12s %-13s %s\n", "Sunset", FormatClock(r.Daylight.SunsetHours),
		"Moonset", moonTimeLabel(r.MoonTimes.Set, r.MoonTimes))
	fmt.Fprintf(w, "%-12s %-12s %-13s %s\n", "Day length", length,
		"Phase", r.Phase)
	fmt.Fprintf(w, "%-12s %-12s %-13s %s\n", "Solar noon", FormatClock(r.SolarNoon),
		"Illuminated", FormatPercent(r.Illuminated))
	fmt.Fprintf(w, "%-12s %-12s %-13s %s\n", "Max elev", fmt.Sprintf("%.1f°", r.MaxElevationDeg),
		"Distance", FormatKm(r.MoonDistanceKm))

	if len(r.Seasons) > 0 {
		fmt.Fprintln(w, strings.Repeat("─", reportRule))
		fmt.Fprintf(w, "Seasons %d\n", r.Params.Date.Year)
		for _, s := range r.Seasons {
			fmt.Fprintf(w, "  %-20s %s  %s UTC\n", s.Name, s.Date, FormatClock(s.HourUTC))
		}
	}

	fmt.Fprintf(w, "\nGenerated %s\n", now.UTC().Format(time.RFC3339))
}

// moonTimeLabel renders one lunar crossing, falling back to the
// whole-day labels when the moon never crosses the horizon.
func moonTimeLabel(hours float64, mt MoonTimes) string {
	switch {
	case mt.AlwaysUp:
		return "up all day"
	case mt.AlwaysDown:
		return "down all day"
	case math.IsNaN(hours):
		return "--:--"
	default:
		return FormatClock(hours)
	}
}
