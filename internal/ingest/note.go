package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Labelled-field extraction rules for the free-text progress note. Each
// rule is independent and tolerant of the others being absent.
var (
	// dateLabelRe captures the text following a "Date" label up to the
	// end of the line.
	dateLabelRe = regexp.MustCompile(`(?i)\bdate\b[ \t]*:?[ \t]*([^\n]+)`)

	// interruptionTotalRe captures the integer after the
	// "INTERRUPTIONS TOTAL #" header. The single-R misspelling
	// ("INTERUPTIONS") is common in the source notes and accepted.
	interruptionTotalRe = regexp.MustCompile(`(?i)\binter{1,2}uptions?[ \t]+total[ \t]*#*[ \t]*:?[ \t]*(\d+)`)

	hoursLabelRe   = regexp.MustCompile(`(?i)\bhours?\b[ \t]*:?[ \t]*(\d+)`)
	minutesLabelRe = regexp.MustCompile(`(?i)\bminutes?\b[ \t]*:?[ \t]*(\d+)`)

	startLabelRe = regexp.MustCompile(`(?i)start[ \t]*time`)
	endLabelRe   = regexp.MustCompile(`(?i)end[ \t]*time`)
)

// ParsedNote holds the independently extracted fields of one note.
type ParsedNote struct {
	// DateExpr is the raw date expression, still unparsed.
	DateExpr string

	// StartLine/EndLine are the first lines carrying a "Start time" /
	// "End time" label; they describe the primary interval.
	StartLine string
	EndLine   string

	// InterruptionTotal is the explicit episode count, when stated.
	InterruptionTotal *int

	// Hours/Minutes are the explicit duration fields, when stated.
	Hours   *int
	Minutes *int

	// text is the normalized note body, kept for the episode extractor.
	text string
	// totalHeaderEnd is the byte offset just past the interruption-total
	// header, or -1 when the note has none.
	totalHeaderEnd int
}

// ParseNote extracts the labelled fields from one note's full text.
// Carriage returns are stripped first. A blank or whitespace-only note
// yields nil; the caller skips the row.
func ParseNote(text string) *ParsedNote {
	text = strings.ReplaceAll(text, "\r", "")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	note := &ParsedNote{text: text, totalHeaderEnd: -1}

	if m := dateLabelRe.FindStringSubmatch(text); m != nil {
		note.DateExpr = strings.TrimSpace(m[1])
	}

	// Start/End lines are sliced from their label onward so that a note
	// carrying both labels on one physical line still resolves two
	// distinct clock times.
	for _, line := range strings.Split(text, "\n") {
		if note.StartLine == "" {
			if loc := startLabelRe.FindStringIndex(line); loc != nil {
				start := line[loc[0]:]
				// Bound the start slice at a following End-time label so
				// the end's markers cannot shadow the start's.
				if end := endLabelRe.FindStringIndex(start[loc[1]-loc[0]:]); end != nil {
					start = start[:loc[1]-loc[0]+end[0]]
				}
				note.StartLine = start
			}
		}
		if note.EndLine == "" {
			if loc := endLabelRe.FindStringIndex(line); loc != nil {
				note.EndLine = line[loc[0]:]
			}
		}
	}

	if idx := interruptionTotalRe.FindStringSubmatchIndex(text); idx != nil {
		if n, err := strconv.Atoi(text[idx[2]:idx[3]]); err == nil {
			note.InterruptionTotal = &n
			note.totalHeaderEnd = idx[1]
		}
	}

	if m := hoursLabelRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			note.Hours = &n
		}
	}
	if m := minutesLabelRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			note.Minutes = &n
		}
	}

	return note
}
