// Package cli implements the journal command line: adding, listing,
// filtering and deleting entries, sentiment analysis, weekly reflections
// and exports.
//
// Commands talk to the HTTP API (mode "api") or directly to PostgreSQL
// (mode "postgres"). Settings come from flags, JOURNAL_* variables and
// .journal.yaml (see package config).
package cli
