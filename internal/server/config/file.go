package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/echojournal/internal/flagx"
	"github.com/dmitrijs2005/echojournal/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Intervals use
// timex.Duration so both "10s" and integer nanoseconds are accepted.
// Keys absent from the file keep their current value.
type FileConfig struct {
	HTTPAddr             string         `json:"http_addr" yaml:"http_addr"`
	GRPCAddr             string         `json:"grpc_addr" yaml:"grpc_addr"`
	Store                string         `json:"store" yaml:"store"`
	DatabaseDSN          string         `json:"database_dsn" yaml:"database_dsn"`
	FirestoreProject     string         `json:"firestore_project" yaml:"firestore_project"`
	FirestoreCollection  string         `json:"firestore_collection" yaml:"firestore_collection"`
	FirestoreCredentials string         `json:"firestore_credentials" yaml:"firestore_credentials"`
	AuthSecret           string         `json:"auth_secret" yaml:"auth_secret"`
	TokenValidity        timex.Duration `json:"token_validity" yaml:"token_validity"`
	AgentID              string         `json:"agent_id" yaml:"agent_id"`
	AgentKeyHash         string         `json:"agent_key_hash" yaml:"agent_key_hash"`
	Analyzer             string         `json:"analyzer" yaml:"analyzer"`
	GeminiAPIKey         string         `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel          string         `json:"gemini_model" yaml:"gemini_model"`
	RequestTimeout       timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	EnrichWorkers        int            `json:"enrich_workers" yaml:"enrich_workers"`
	EnrichQueue          int            `json:"enrich_queue" yaml:"enrich_queue"`
	EnrichTimeout        timex.Duration `json:"enrich_timeout" yaml:"enrich_timeout"`
	ReflectionWindow     int            `json:"reflection_window" yaml:"reflection_window"`
	DisplayTimezone      string         `json:"display_timezone" yaml:"display_timezone"`
	LogFormat            string         `json:"log_format" yaml:"log_format"`
	ExportEnabled        bool           `json:"export_enabled" yaml:"export_enabled"`
	S3RootUser           string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword       string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket             string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region             string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint       string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

func fileConfigFrom(c *Config) *FileConfig {
	return &FileConfig{
		HTTPAddr:             c.HTTPAddr,
		GRPCAddr:             c.GRPCAddr,
		Store:                c.Store,
		DatabaseDSN:          c.DatabaseDSN,
		FirestoreProject:     c.FirestoreProject,
		FirestoreCollection:  c.FirestoreCollection,
		FirestoreCredentials: c.FirestoreCredentials,
		AuthSecret:           c.AuthSecret,
		TokenValidity:        timex.Duration{Duration: c.TokenValidity},
		AgentID:              c.AgentID,
		AgentKeyHash:         c.AgentKeyHash,
		Analyzer:             c.Analyzer,
		GeminiAPIKey:         c.GeminiAPIKey,
		GeminiModel:          c.GeminiModel,
		RequestTimeout:       timex.Duration{Duration: c.RequestTimeout},
		EnrichWorkers:        c.EnrichWorkers,
		EnrichQueue:          c.EnrichQueue,
		EnrichTimeout:        timex.Duration{Duration: c.EnrichTimeout},
		ReflectionWindow:     c.ReflectionWindow,
		DisplayTimezone:      c.DisplayTimezone,
		LogFormat:            c.LogFormat,
		ExportEnabled:        c.ExportEnabled,
		S3RootUser:           c.S3RootUser,
		S3RootPassword:       c.S3RootPassword,
		S3Bucket:             c.S3Bucket,
		S3Region:             c.S3Region,
		S3BaseEndpoint:       c.S3BaseEndpoint,
	}
}

func (f *FileConfig) apply(c *Config) {
	c.HTTPAddr = f.HTTPAddr
	c.GRPCAddr = f.GRPCAddr
	c.Store = f.Store
	c.DatabaseDSN = f.DatabaseDSN
	c.FirestoreProject = f.FirestoreProject
	c.FirestoreCollection = f.FirestoreCollection
	c.FirestoreCredentials = f.FirestoreCredentials
	c.AuthSecret = f.AuthSecret
	c.TokenValidity = f.TokenValidity.Duration
	c.AgentID = f.AgentID
	c.AgentKeyHash = f.AgentKeyHash
	c.Analyzer = f.Analyzer
	c.GeminiAPIKey = f.GeminiAPIKey
	c.GeminiModel = f.GeminiModel
	c.RequestTimeout = f.RequestTimeout.Duration
	c.EnrichWorkers = f.EnrichWorkers
	c.EnrichQueue = f.EnrichQueue
	c.EnrichTimeout = f.EnrichTimeout.Duration
	c.ReflectionWindow = f.ReflectionWindow
	c.DisplayTimezone = f.DisplayTimezone
	c.LogFormat = f.LogFormat
	c.ExportEnabled = f.ExportEnabled
	c.S3RootUser = f.S3RootUser
	c.S3RootPassword = f.S3RootPassword
	c.S3Bucket = f.S3Bucket
	c.S3Region = f.S3Region
	c.S3BaseEndpoint = f.S3BaseEndpoint
}

// parseFile overlays the config file named by -c or -config onto config.
// YAML is used for .yaml/.yml files, JSON otherwise. No flag, no file.
func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	fc := fileConfigFrom(config)
	switch flagx.FormatOf(path) {
	case flagx.FormatYAML:
		err = yaml.Unmarshal(data, fc)
	default:
		err = json.Unmarshal(data, fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(config)
	return nil
}
