// Package domain defines the data contracts shared between the ingestion
// engine and its consumers: normalized sleep records, summary windows,
// and per-window statistics. Types here carry no behavior beyond small
// derived accessors and depend only on the standard library.
package domain
