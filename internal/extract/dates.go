package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Month names as they appear on carrier pages, Spanish and English, full and
// abbreviated. Keys are lowercase; trailing dots are stripped before lookup.
var monthNames = map[string]time.Month{
	"enero": time.January, "ene": time.January,
	"febrero": time.February, "feb": time.February,
	"marzo": time.March, "mar": time.March,
	"abril": time.April, "abr": time.April,
	"mayo": time.May, "may": time.May,
	"junio": time.June, "jun": time.June,
	"julio": time.July, "jul": time.July,
	"agosto": time.August, "ago": time.August,
	"septiembre": time.September, "setiembre": time.September, "sep": time.September, "sept": time.September,
	"octubre": time.October, "oct": time.October,
	"noviembre": time.November, "nov": time.November,
	"diciembre": time.December, "dic": time.December,

	"january": time.January, "jan": time.January,
	"february": time.February,
	"march":    time.March,
	"april":    time.April, "apr": time.April,
	"june": time.June,
	"july": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December, "dec": time.December,
}

var (
	// 27/08/2025 or 27/08/25
	numericDateRE = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	// 27 de agosto de 2025, 27 ago 2025, 27 Aug 2025
	dayFirstDateRE = regexp.MustCompile(`^(?i)(\d{1,2})(?:\s+de)?\s+([a-záéíóúñ.]+)(?:\s+de)?,?\s+(\d{2,4})$`)
	// August 27, 2025, Ago 27 2025
	monthFirstDateRE = regexp.MustCompile(`^(?i)([a-záéíóúñ.]+)\s+(\d{1,2}),?\s+(\d{4})$`)
)

// ParseDate recognises the date formats carrier pages produce in either
// locale and reports whether the span is a plausible calendar date. The
// extraction engine keeps the original textual span as the field value; this
// parser only decides whether a capture is actually a date.
func ParseDate(span string) (time.Time, bool) {
	s := strings.TrimSpace(span)
	if s == "" {
		return time.Time{}, false
	}

	if m := numericDateRE.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := expandYear(m[3])
		return makeDate(year, time.Month(month), day)
	}
	if m := dayFirstDateRE.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := lookupMonth(m[2])
		if !ok {
			return time.Time{}, false
		}
		return makeDate(expandYear(m[3]), month, day)
	}
	if m := monthFirstDateRE.FindStringSubmatch(s); m != nil {
		month, ok := lookupMonth(m[1])
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		return makeDate(year, month, day)
	}
	return time.Time{}, false
}

func lookupMonth(name string) (time.Month, bool) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
	month, ok := monthNames[key]
	return month, ok
}

func expandYear(raw string) int {
	year, _ := strconv.Atoi(raw)
	if len(raw) == 2 {
		year += 2000
	}
	return year
}

// makeDate rejects out-of-range components such as 40/13/2025, which
// time.Date would silently normalise into a different day.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if year < 1970 || year > 2100 || month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return time.Time{}, false
	}
	return t, true
}
