// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence (highest first)
//
//  1. Command-line flags bound by the cli package.
//  2. Environment variables prefixed with JOURNAL_ (JOURNAL_USER, JOURNAL_SERVER, ...).
//  3. A .journal.yaml file in the directory given by --config-dir, the
//     current directory or the home directory, in that order.
//  4. Built-in defaults (see (*Config).LoadDefaults).
//
// # File schema
//
//	server: http://127.0.0.1:8080
//	mode: api            # or postgres
//	database-dsn: postgres://...
//	user: alice
//	token: <bearer token>
//	timeout: 10s
//	timezone: Europe/Riga
//	export-dir: exports
package config
