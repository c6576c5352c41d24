package tableschema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearMonth is the logical value of a yearmonth field.
type YearMonth struct {
	Year  int
	Month time.Month
}

// String renders the ISO-8601 form, e.g. 2017-06.
func (ym YearMonth) String() string { return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month)) }

func (f *Field) castTemporal(s string, parse func(string) (time.Time, error)) (any, error) {
	switch f.Format.Kind {
	case FormatDefault:
		t, err := parse(s)
		if err != nil {
			return nil, errBadCast
		}
		return t, nil
	case FormatAny, FormatPattern:
		return nil, errUnavailable
	}
	return nil, errBadCast
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, time.UTC)
}

func parseTimeOfDay(s string) (time.Time, error) {
	return time.ParseInLocation(time.TimeOnly, s, time.UTC)
}

func parseDateTime(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2.UTC(), nil
		}
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func formatDateTime(t time.Time) string {
	// Normalize to UTC; RFC3339Nano trims trailing zeros.
	return t.UTC().Format(time.RFC3339Nano)
}

// calendarParts splits YYYY[-MM[-DD]] (or YY[...]) into validated numbers.
// Missing components are returned as zero.
func calendarParts(s string) (year, month, day, n int, err error) {
	parts := strings.Split(s, "-")
	if len(parts) > 3 {
		return 0, 0, 0, 0, errBadCast
	}
	if l := len(parts[0]); (l != 2 && l != 4) || !allDigits(parts[0]) {
		return 0, 0, 0, 0, errBadCast
	}
	year, _ = strconv.Atoi(parts[0])
	n = len(parts)
	if n >= 2 {
		if len(parts[1]) != 2 || !allDigits(parts[1]) {
			return 0, 0, 0, 0, errBadCast
		}
		month, _ = strconv.Atoi(parts[1])
		if month < 1 || month > 12 {
			return 0, 0, 0, 0, errBadCast
		}
	}
	if n == 3 {
		if len(parts[2]) != 2 || !allDigits(parts[2]) {
			return 0, 0, 0, 0, errBadCast
		}
		day, _ = strconv.Atoi(parts[2])
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if day < 1 || t.Day() != day {
			return 0, 0, 0, 0, errBadCast
		}
	}
	return year, month, day, n, nil
}

func parseYear(s string) (any, error) {
	year, _, _, _, err := calendarParts(s)
	if err != nil {
		return nil, err
	}
	return year, nil
}

func parseYearMonth(s string) (any, error) {
	year, month, _, n, err := calendarParts(s)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, errBadCast
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
