// Package ingest normalizes heterogeneous sleep-diary spreadsheet
// exports into structured records.
//
// Two incompatible input shapes are recognized from the header row: a
// "raw" export where one free-text column carries a human-written
// progress note (dates, clock times, AM/PM markers, interruption counts
// in inconsistent formats), and a "preprocessed" export with explicit
// start/end/duration columns.
//
// # Pipeline
//
// The loader classifies the header once, then streams rows one at a
// time:
//
//	header → DetectLayout → per-row: ParseNote → ExtractEpisodes →
//	NormalizeDate → record assembly → CorrectFutureDates → sort
//
// # Error model
//
// Only an unrecognizable header aborts a load (errors.ErrTypeSchema).
// Everything row-local (unparseable dates, unresolvable clock times,
// non-positive durations, blank notes) is dropped silently and counted
// in the ingest metrics; the batch continues.
//
// Extraction rules are pure functions over strings so each can be unit
// tested with literal note fragments.
package ingest
