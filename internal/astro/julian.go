package astro

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate indicates calendar date fields outside their valid range.
var ErrInvalidDate = errors.New("invalid calendar date")

// j2000Ordinal is the proleptic Gregorian ordinal of the J2000.0 epoch
// (2000 January 1, 12:00 UTC). Ordinal minus this constant gives days from
// the epoch; every series below is anchored to it.
const j2000Ordinal = 730120.5

// julianCentury is the number of days in one Julian century.
const julianCentury = 36525.0

// Date is a calendar date in the proleptic Gregorian calendar.
type Date struct {
	Year  int // 1-9999
	Month int // 1-12
	Day   int // 1-31, leap aware
}

// daysBeforeMonth[m-1] is the day-of-year count preceding month m in a
// non-leap year.
var daysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// NewDate validates the fields and returns the date.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	var year, month, day int
	if n, err := fmt.Sscanf(s, "%d-%d-%d", &year, &month, &day); n != 3 || err != nil {
		return Date{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return NewDate(year, month, day)
}

// Today returns the current date in the local timezone.
func Today() Date {
	now := time.Now()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// unixEpochOrdinal is the proleptic Gregorian ordinal of 1970-01-01.
const unixEpochOrdinal = 719163

// ClockAt returns the calendar date and minute of day at the given
// instant for a clock running tzHours east of UTC.
func ClockAt(t time.Time, tzHours float64) (Date, int) {
	local := t.Unix() + int64(tzHours*3600)
	days := local / 86400
	secs := local - days*86400
	if secs < 0 {
		days--
		secs += 86400
	}
	return DateFromOrdinal(int(days) + unixEpochOrdinal), int(secs / 60)
}

// Validate checks all fields, including the leap-aware day range.
func (d Date) Validate() error {
	if d.Year < 1 || d.Year > 9999 {
		return fmt.Errorf("%w: year %d outside 1-9999", ErrInvalidDate, d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d outside 1-12", ErrInvalidDate, d.Month)
	}
	if max := DaysInMonth(d.Year, d.Month); d.Day < 1 || d.Day > max {
		return fmt.Errorf("%w: day %d outside 1-%d for %04d-%02d", ErrInvalidDate, d.Day, max, d.Year, d.Month)
	}
	return nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsLeapYear reports whether a proleptic Gregorian year is a leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 365 or 366.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the day count of a month, leap aware.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

// Ordinal returns the proleptic Gregorian day count with 0001-01-01 as day 1.
func (d Date) Ordinal() int {
	y := d.Year - 1
	n := 365*y + y/4 - y/100 + y/400
	n += daysBeforeMonth[d.Month-1]
	if d.Month > 2 && IsLeapYear(d.Year) {
		n++
	}
	return n + d.Day
}

// DayOfYear returns the 1-based day of year.
func (d Date) DayOfYear() int {
	doy := daysBeforeMonth[d.Month-1] + d.Day
	if d.Month > 2 && IsLeapYear(d.Year) {
		doy++
	}
	return doy
}

// DaysSinceJ2000 returns the continuous day count from the J2000.0 epoch to
// UTC midnight of the date. Negative before the epoch.
func (d Date) DaysSinceJ2000() float64 {
	return float64(d.Ordinal()) - j2000Ordinal
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateFromOrdinal(d.Ordinal() + n)
}

// DateFromOrdinal inverts Ordinal. The ordinal must correspond to a year in
// 1-9999.
func DateFromOrdinal(n int) Date {
	// Era decomposition over the 146097-day Gregorian cycle, with the year
	// taken to start in March so the leap day lands at the end.
	z := n + 305
	era := z / 146097
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	day := doy - (153*mp+2)/5 + 1
	month := mp + 3
	if mp >= 10 {
		month = mp - 9
	}
	if month <= 2 {
		y++
	}
	return Date{Year: y, Month: month, Day: day}
}
