package almanac

import (
	"github.com/litescript/ls-almanac/internal/astro"
)

// DaySummary is one day of a year series.
type DaySummary struct {
	Date     astro.Date
	Daylight astro.Daylight
}

// YearSeries is the day-length series for a calendar year at one
// location, with the year's season marks attached for annotation.
type YearSeries struct {
	Year    int
	Days    []DaySummary
	Seasons []astro.SeasonMark
}

// ComputeYear evaluates the day-length model for every day of year at
// p's location. p.Date is ignored; the series covers the whole year.
func ComputeYear(year int, p Params) *YearSeries {
	model := p.Model
	if model == nil {
		model = astro.IterativeModel{}
	}

	days := make([]DaySummary, 0, astro.DaysInYear(year))
	date := astro.Date{Year: year, Month: 1, Day: 1}
	for date.Year == year {
		days = append(days, DaySummary{
			Date:     date,
			Daylight: model.DayLength(date, p.LatDeg, p.LonDeg, p.TZHours, p.HorizonDeg),
		})
		date = date.AddDays(1)
	}

	return &YearSeries{
		Year:    year,
		Days:    days,
		Seasons: astro.SeasonMarks(year),
	}
}

// Longest returns the index of the longest day in the series.
func (ys *YearSeries) Longest() int {
	if len(ys.Days) == 0 {
		return 0
	}
	best := 0
	for i := range ys.Days {
		if ys.Days[i].Daylight.DayLengthHrs > ys.Days[best].Daylight.DayLengthHrs {
			best = i
		}
	}
	return best
}

// Shortest returns the index of the shortest day in the series.
func (ys *YearSeries) Shortest() int {
	if len(ys.Days) == 0 {
		return 0
	}
	best := 0
	for i := range ys.Days {
		if ys.Days[i].Daylight.DayLengthHrs < ys.Days[best].Daylight.DayLengthHrs {
			best = i
		}
	}
	return best
}

// MeanLength returns the mean day length over the series in hours.
func (ys *YearSeries) MeanLength() float64 {
	if len(ys.Days) == 0 {
		return 0
	}
	var sum float64
	for _, d := range ys.Days {
		sum += d.Daylight.DayLengthHrs
	}
	return sum / float64(len(ys.Days))
}
