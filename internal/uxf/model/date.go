package model

import "fmt"

// Date is a Gregorian proleptic calendar date, year 1-9999.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate validates and constructs a Date.
func NewDate(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if !d.Valid() {
		return Date{}, fmt.Errorf("invalid date: %04d-%02d-%02d", year, month, day)
	}
	return d, nil
}

// Valid reports whether the date's components form a real Gregorian date.
func (d Date) Valid() bool {
	if d.Year < 1 || d.Year > 9999 {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	if d.Day < 1 || d.Day > daysInMonth(d.Year, d.Month) {
		return false
	}
	return true
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Equal reports whether two dates denote the same day.
func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func isLeapYear(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}

func daysInMonth(y, m int) int {
	switch m {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(y) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// DateTime is year-month-day hour:minute:second with an optional UTC offset
// in minutes. Seconds default to 0 when omitted from the
// concrete syntax. Imprecise is set when the offset could not be honored
// precisely by an implementation lacking full timezone support -- this implementation always honors the offset, so Imprecise is
// only ever set by callers constructing a DateTime by hand to record that
// provenance.
type DateTime struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	HasOffset            bool
	OffsetMinutes         int // minutes east of UTC
	Imprecise             bool
}

// NewDateTime validates and constructs a DateTime.
func NewDateTime(year, month, day, hour, minute, second int) (DateTime, error) {
	dt := DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
	if !dt.Valid() {
		return DateTime{}, fmt.Errorf("invalid datetime: %04d-%02d-%02dT%02d:%02d:%02d", year, month, day, hour, minute, second)
	}
	return dt, nil
}

// Valid reports whether the datetime's date and time-of-day components are
// in range.
func (dt DateTime) Valid() bool {
	if !(Date{dt.Year, dt.Month, dt.Day}).Valid() {
		return false
	}
	if dt.Hour < 0 || dt.Hour > 23 {
		return false
	}
	if dt.Minute < 0 || dt.Minute > 59 {
		return false
	}
	if dt.Second < 0 || dt.Second > 59 {
		return false
	}
	return true
}

// String renders the datetime in canonical concrete syntax, omitting
// seconds when zero is not required (seconds are always emitted when
// nonzero, and always zero-padded when emitted) and appending the retained
// offset, if any.
func (dt DateTime) String() string {
	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute)
	if dt.Second != 0 {
		s += fmt.Sprintf(":%02d", dt.Second)
	}
	if dt.HasOffset {
		if dt.OffsetMinutes == 0 {
			s += "Z"
		} else {
			sign := "+"
			off := dt.OffsetMinutes
			if off < 0 {
				sign = "-"
				off = -off
			}
			s += fmt.Sprintf("%s%02d:%02d", sign, off/60, off%60)
		}
	}
	return s
}

// Equal reports whether two datetimes denote the same instant components
// (no timezone normalization is performed, per.2).
func (dt DateTime) Equal(o DateTime) bool {
	return dt.Year == o.Year && dt.Month == o.Month && dt.Day == o.Day &&
		dt.Hour == o.Hour && dt.Minute == o.Minute && dt.Second == o.Second &&
		dt.HasOffset == o.HasOffset && dt.OffsetMinutes == o.OffsetMinutes
}
