package ingest

import (
	"fmt"
	"strings"

	"sleepcli/internal/errors"
)

// SchemaKind identifies which of the two recognized export shapes a file
// uses. It is detected once per load and carried through the pipeline.
type SchemaKind string

const (
	// SchemaRaw is the export where one column holds a free-text
	// progress note that must be parsed.
	SchemaRaw SchemaKind = "raw"
	// SchemaPreprocessed is the export with explicit start/end/duration
	// columns.
	SchemaPreprocessed SchemaKind = "preprocessed"
)

// Layout maps the detected schema variant to column positions in the
// header row. Optional columns are -1 when absent.
type Layout struct {
	Kind SchemaKind

	Name          int
	Details       int
	Start         int
	End           int
	Duration      int
	Interruptions int
}

// Column alias sets, matched case-insensitively after trimming. The raw
// variant wins whenever both of its required columns are present.
var (
	rawNameAliases = aliasSet(
		"Name", "Resident Name", "Resident", "ResidentName", "Client Name", "Participant Name",
	)
	rawDetailsAliases = aliasSet(
		"Details", "Progress Note", "Progress Note Note", "Progress Note Text", "Note",
	)

	preNameAliases     = aliasSet("Name", "Resident Name", "Resident")
	preStartAliases    = aliasSet("start_dt", "start", "start_time", "start_datetime")
	preEndAliases      = aliasSet("end_dt", "end", "end_time", "end_datetime")
	preDurationAliases = aliasSet("duration_hr", "duration_hours", "duration")
	preInterrAliases   = aliasSet("interruptions", "interruptions_count", "interruptions_total")
)

func aliasSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = struct{}{}
	}
	return set
}

// DetectLayout classifies a header row against the two recognized schema
// variants. It returns a schema error when neither variant's required
// columns are all present; this is the one fatal error in the engine.
func DetectLayout(header []string) (Layout, error) {
	cells := make([]string, len(header))
	for i, h := range header {
		cells[i] = strings.ToLower(strings.TrimSpace(h))
	}

	find := func(aliases map[string]struct{}) int {
		for i, c := range cells {
			if c == "" {
				continue
			}
			if _, ok := aliases[c]; ok {
				return i
			}
		}
		return -1
	}

	layout := Layout{Start: -1, End: -1, Duration: -1, Interruptions: -1}

	name := find(rawNameAliases)
	details := find(rawDetailsAliases)
	if name >= 0 && details >= 0 {
		layout.Kind = SchemaRaw
		layout.Name = name
		layout.Details = details
		return layout, nil
	}

	name = find(preNameAliases)
	start := find(preStartAliases)
	duration := find(preDurationAliases)
	if name >= 0 && start >= 0 && duration >= 0 {
		layout.Kind = SchemaPreprocessed
		layout.Name = name
		layout.Details = -1
		layout.Start = start
		layout.End = find(preEndAliases)
		layout.Duration = duration
		layout.Interruptions = find(preInterrAliases)
		return layout, nil
	}

	return Layout{}, errors.NewSchemaError(
		fmt.Sprintf("header row matches neither raw nor preprocessed schema: %v", header), nil)
}
