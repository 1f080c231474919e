package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"sleepcli/pkg/contracts/domain"
)

var (
	// clockTokenRe matches the first H:MM pattern in a line.
	clockTokenRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

	// checkedMarkerRe matches a ticked checkbox immediately followed by
	// an AM/PM marker, e.g. "(x) PM" or "[X] AM".
	checkedMarkerRe = regexp.MustCompile(`(?i)[(\[]\s*x\s*[)\]]\s*(AM|PM)`)

	// bareMarkerRe matches any standalone AM/PM occurrence.
	bareMarkerRe = regexp.MustCompile(`(?i)\b(AM|PM)\b`)
)

// clockToken is an extracted H:MM time token and its byte position.
type clockToken struct {
	hour   int
	minute int
	pos    int
}

func extractClockToken(line string) (clockToken, bool) {
	idx := clockTokenRe.FindStringSubmatchIndex(line)
	if idx == nil {
		return clockToken{}, false
	}
	hour, _ := strconv.Atoi(line[idx[2]:idx[3]])
	minute, _ := strconv.Atoi(line[idx[4]:idx[5]])
	return clockToken{hour: hour, minute: minute, pos: idx[0]}, true
}

// resolvePeriod picks the AM/PM marker that governs a line. A checked
// marker ("(x) PM") always wins. Otherwise the first bare marker at or
// after the time token applies; when the line has no time token, the
// first marker found anywhere does.
func resolvePeriod(line string) (string, bool) {
	if m := checkedMarkerRe.FindStringSubmatch(line); m != nil {
		return strings.ToUpper(m[1]), true
	}

	markers := bareMarkerRe.FindAllStringSubmatchIndex(line, -1)
	if len(markers) == 0 {
		return "", false
	}

	if tok, ok := extractClockToken(line); ok {
		for _, m := range markers {
			if m[0] >= tok.pos {
				return strings.ToUpper(line[m[2]:m[3]]), true
			}
		}
	}
	first := markers[0]
	return strings.ToUpper(line[first[2]:first[3]]), true
}

// ResolveClockMinutes parses a line containing an H:MM token and an
// AM/PM marker into minutes from midnight. It returns false when either
// the token or the marker cannot be resolved.
func ResolveClockMinutes(line string) (int, bool) {
	tok, ok := extractClockToken(line)
	if !ok {
		return 0, false
	}
	period, ok := resolvePeriod(line)
	if !ok {
		return 0, false
	}
	return minutesFromMidnight(tok.hour, tok.minute, period), true
}

// minutesFromMidnight converts (hour, minute, period) to a clock-of-day
// minute: 12 AM is hour 0, any PM hour other than 12 gains 12.
func minutesFromMidnight(hour, minute int, period string) int {
	switch period {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	}
	m := (hour*60 + minute) % domain.MinutesPerDay
	if m < 0 {
		m += domain.MinutesPerDay
	}
	return m
}
