package ingest

import (
	"regexp"
	"strings"
)

var (
	// Fallback single-value labels, scanned over the whole note only
	// when no per-episode pairs were found.
	startMeanLabelRe = regexp.MustCompile(`(?i)interruption[ \t]+start[ \t]+mean[^\n]*`)
	endMeanLabelRe   = regexp.MustCompile(`(?i)interruption[ \t]+end[ \t]+mean[^\n]*`)
)

// Episodes holds the extracted interruption data for one note: parallel
// start/end minute lists, or single fallback means when no per-episode
// pairs were found.
type Episodes struct {
	StartMinutes []int
	EndMinutes   []int

	StartMean *int
	EndMean   *int
}

// ExtractEpisodes pulls interruption start/end pairs out of a parsed
// note. The interruption region is the text following the
// interruption-total header when one was found, otherwise the text
// following the last End-time line. All Start-time and End-time lines in
// the region are collected (not just the first of each, unlike the
// primary-interval extraction) and paired by position.
//
// Positional pairing is inherited from the upstream reporting workflow:
// if extraction order ever diverges between starts and ends, pairs may
// combine unrelated episodes. Do not change this without changing the
// producers.
func ExtractEpisodes(note *ParsedNote) Episodes {
	var eps Episodes
	if note == nil {
		return eps
	}

	region := interruptionRegion(note)

	// Like the primary-interval extraction, episode lines are sliced
	// from their label onward, and a start slice is bounded at a
	// following End-time label on the same physical line.
	var startLines, endLines []string
	for _, line := range strings.Split(region, "\n") {
		if loc := startLabelRe.FindStringIndex(line); loc != nil {
			start := line[loc[0]:]
			if end := endLabelRe.FindStringIndex(start[loc[1]-loc[0]:]); end != nil {
				start = start[:loc[1]-loc[0]+end[0]]
			}
			startLines = append(startLines, start)
		}
		if loc := endLabelRe.FindStringIndex(line); loc != nil {
			endLines = append(endLines, line[loc[0]:])
		}
	}

	// Consumed pairwise up to the shorter list; trailing unmatched
	// entries are ignored, never padded.
	n := len(startLines)
	if len(endLines) < n {
		n = len(endLines)
	}
	for i := 0; i < n; i++ {
		start, okStart := ResolveClockMinutes(startLines[i])
		end, okEnd := ResolveClockMinutes(endLines[i])
		if !okStart || !okEnd {
			continue
		}
		eps.StartMinutes = append(eps.StartMinutes, start)
		eps.EndMinutes = append(eps.EndMinutes, end)
	}

	if len(eps.StartMinutes) > 0 || len(eps.EndMinutes) > 0 {
		return eps
	}

	// No per-episode pairs anywhere: fall back to explicitly labelled
	// mean times over the whole note.
	if line := startMeanLabelRe.FindString(note.text); line != "" {
		if m, ok := ResolveClockMinutes(line); ok {
			eps.StartMean = &m
		}
	}
	if line := endMeanLabelRe.FindString(note.text); line != "" {
		if m, ok := ResolveClockMinutes(line); ok {
			eps.EndMean = &m
		}
	}

	return eps
}

// interruptionRegion returns the note substring episodes are extracted
// from.
func interruptionRegion(note *ParsedNote) string {
	if note.totalHeaderEnd >= 0 && note.totalHeaderEnd <= len(note.text) {
		return note.text[note.totalHeaderEnd:]
	}

	// No interruption header: everything after the last End-time line.
	locs := endLabelRe.FindAllStringIndex(note.text, -1)
	if len(locs) == 0 {
		return ""
	}
	last := locs[len(locs)-1]
	if nl := strings.IndexByte(note.text[last[1]:], '\n'); nl >= 0 {
		return note.text[last[1]+nl+1:]
	}
	return ""
}
