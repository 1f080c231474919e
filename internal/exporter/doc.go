// Package exporter provides CSV export functionality for the SleepPulse
// processor.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// RecordsExporter: Writes the full normalized record set, one row per
// sleep interval.
//
// SummaryExporter: Writes per-person per-window statistics with clock
// values rendered as HH:MM.
package exporter
