package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/echojournal/internal/flagx"
)

var knownFlags = []string{
	"-a", "-grpc", "-store", "-d", "-s", "-t", "-analyzer", "-m", "-tz", "-log",
	"-project", "-export", "-u", "-p", "-b", "-g", "-e",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string         HTTP bind address (e.g. ":8080")
//	-grpc string      agent API bind address, empty disables it
//	-store string     storage backend: memory, postgres, firestore
//	-d string         PostgreSQL DSN
//	-project string   Firestore project id
//	-s string         JWT HMAC secret
//	-t int            request timeout, seconds
//	-analyzer string  heuristic or gemini
//	-m string         Gemini model
//	-tz string        display time zone
//	-log string       log format: json, text, zap
//	-export           enable journal export
//	-u, -p string     S3 user and password
//	-b, -g string     S3 bucket and region
//	-e string         S3 base endpoint
//
// Only these flags are taken from args, so subcommand flags do not collide.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "grpc", config.GRPCAddr, "agent gRPC address and port")
	fs.StringVar(&config.Store, "store", config.Store, "storage backend")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.FirestoreProject, "project", config.FirestoreProject, "Firestore project id")
	fs.StringVar(&config.AuthSecret, "s", config.AuthSecret, "JWT secret")

	requestTimeout := fs.Int("t", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	fs.StringVar(&config.Analyzer, "analyzer", config.Analyzer, "sentiment analyzer")
	fs.StringVar(&config.GeminiModel, "m", config.GeminiModel, "Gemini model")
	fs.StringVar(&config.DisplayTimezone, "tz", config.DisplayTimezone, "display time zone")
	fs.StringVar(&config.LogFormat, "log", config.LogFormat, "log format")
	fs.BoolVar(&config.ExportEnabled, "export", config.ExportEnabled, "enable journal export")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// -t only overrides when given, so sub-second file values survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
		}
	})
	return nil
}
