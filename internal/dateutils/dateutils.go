// Package dateutils provides the date coercion rules used by the ingestion
// pipeline: Excel serial conversion and day-first string parsing.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the canonical display layout for dates.
const DateLayoutISO = "2006-01-02"

// unixEpochSerial is the Excel serial number of 1970-01-01. Excel serials
// count days since 1899-12-30 (the 1900 leap-year bug included).
const unixEpochSerial = 25569

// secondsPerDay converts a serial day count to seconds.
const secondsPerDay = 86400

// FromExcelSerial converts an Excel date serial to a UTC time.
// serial 44927 is 2023-01-01.
func FromExcelSerial(serial float64) time.Time {
	ms := int64((serial - unixEpochSerial) * secondsPerDay * 1000)
	return time.UnixMilli(ms).UTC()
}

// dayFirstRegex matches DD/MM/YYYY and DD/MM/YY with / - or . separators.
var dayFirstRegex = regexp.MustCompile(`^\s*(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2}|\d{4})\s*$`)

// ParseDayFirst parses a day-first date string (DD/MM/YYYY, 2- or 4-digit
// year). Two-digit years below 50 resolve to the 2000s, 50 and above to the
// 1900s. Calendar validity is enforced: "31/02/2024" fails.
func ParseDayFirst(s string) (time.Time, error) {
	s = CleanDateString(s)
	m := dayFirstRegex.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("not a day-first date: %q", s)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if len(m[3]) == 2 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month in date: %q", s)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid calendar date: %q", s)
	}
	return t, nil
}

// YearWindow bounds the years a parsed date may fall in. Dates outside the
// window are treated as implausible and their rows skipped.
type YearWindow struct {
	Min int
	Max int
}

// Contains reports whether t's year falls within the window. A zero window
// accepts everything.
func (w YearWindow) Contains(t time.Time) bool {
	if w.Min == 0 && w.Max == 0 {
		return true
	}
	y := t.Year()
	return y >= w.Min && y <= w.Max
}

func (w YearWindow) String() string {
	return fmt.Sprintf("[%d, %d]", w.Min, w.Max)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// CleanDateString trims a date string and collapses inner whitespace runs.
func CleanDateString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
