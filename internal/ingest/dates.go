package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dashNormalizer folds the dash-like characters seen in the notes
// (en dash, em dash, minus sign) into a plain hyphen before splitting.
var dashNormalizer = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

var (
	// dateSegmentRe matches the leading month/day[/year] shape of the
	// first hyphen segment. Trailing text on the line is ignored.
	dateSegmentRe = regexp.MustCompile(`^\s*(\d{1,2})\s*/\s*(\d{1,2})(?:\s*/\s*(\d{2,4}))?`)

	// trailingYearRe finds a /year suffix in the second hyphen segment.
	trailingYearRe = regexp.MustCompile(`/\s*(\d{2,4})\s*$`)
)

// NormalizeDate parses a loosely formatted date expression into a UTC
// calendar date. defaultYear is substituted when the expression carries
// no year; callers pass their current year at load time, never a fixed
// constant. It returns false when the expression does not lead with a
// month/day shape or the resulting combination is not a valid calendar
// date.
func NormalizeDate(expr string, defaultYear int) (time.Time, bool) {
	expr = dashNormalizer.Replace(expr)
	segments := strings.Split(expr, "-")

	m := dateSegmentRe.FindStringSubmatch(segments[0])
	if m == nil {
		return time.Time{}, false
	}

	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])

	year := 0
	if m[3] != "" {
		year = expandYear(m[3])
	} else if len(segments) > 1 {
		// Ranges like "3/5 - 3/6/24" state the year only on the second
		// segment.
		if ym := trailingYearRe.FindStringSubmatch(segments[1]); ym != nil {
			year = expandYear(ym[1])
		}
	}
	if year == 0 {
		year = defaultYear
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		// time.Date normalized an impossible month/day combination.
		return time.Time{}, false
	}
	return d, true
}

// expandYear widens a two-digit year by adding 2000.
func expandYear(s string) int {
	y, _ := strconv.Atoi(s)
	if y < 100 {
		y += 2000
	}
	return y
}
