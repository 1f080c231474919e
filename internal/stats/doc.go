// Package stats groups normalized sleep records into per-person
// half-year windows and computes per-window aggregates. Clock-of-day
// quantities use circular means so intervals straddling midnight
// average correctly; scalar quantities use plain arithmetic means.
package stats
