package ingest

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Skip reasons recorded on the rows-skipped counter.
const (
	SkipReasonEmptyNote    = "empty_note"
	SkipReasonBadDate      = "bad_date"
	SkipReasonUnbuildable  = "unbuildable"
	SkipReasonShortRow     = "short_row"
	SkipReasonMalformedRow = "malformed_row"
)

// Metrics holds the ingest instruments. A nil *Metrics is valid and
// records nothing, so the loader works without observability wiring.
type Metrics struct {
	RowsRead       metric.Int64Counter
	RowsSkipped    metric.Int64Counter
	RecordsBuilt   metric.Int64Counter
	DatesCorrected metric.Int64Counter
}

// NewMetrics creates the ingest instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.RowsRead, err = meter.Int64Counter("ingest.rows.read",
		metric.WithDescription("Data rows read from input exports")); err != nil {
		return nil, fmt.Errorf("create rows-read counter: %w", err)
	}
	if m.RowsSkipped, err = meter.Int64Counter("ingest.rows.skipped",
		metric.WithDescription("Rows dropped by row-local failures, by reason")); err != nil {
		return nil, fmt.Errorf("create rows-skipped counter: %w", err)
	}
	if m.RecordsBuilt, err = meter.Int64Counter("ingest.records.built",
		metric.WithDescription("Normalized records produced")); err != nil {
		return nil, fmt.Errorf("create records-built counter: %w", err)
	}
	if m.DatesCorrected, err = meter.Int64Counter("ingest.dates.corrected",
		metric.WithDescription("Records whose future start date was rolled back")); err != nil {
		return nil, fmt.Errorf("create dates-corrected counter: %w", err)
	}
	return m, nil
}

func (m *Metrics) rowRead(ctx context.Context, schema SchemaKind) {
	if m == nil {
		return
	}
	m.RowsRead.Add(ctx, 1, metric.WithAttributes(attribute.String("schema", string(schema))))
}

func (m *Metrics) rowSkipped(ctx context.Context, schema SchemaKind, reason string) {
	if m == nil {
		return
	}
	m.RowsSkipped.Add(ctx, 1, metric.WithAttributes(
		attribute.String("schema", string(schema)),
		attribute.String("reason", reason),
	))
}

func (m *Metrics) recordBuilt(ctx context.Context, schema SchemaKind) {
	if m == nil {
		return
	}
	m.RecordsBuilt.Add(ctx, 1, metric.WithAttributes(attribute.String("schema", string(schema))))
}

func (m *Metrics) datesCorrected(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.DatesCorrected.Add(ctx, int64(n))
}
