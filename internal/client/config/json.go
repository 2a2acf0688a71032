package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/photodesk/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent keys leave the current
// value alone; durations use timex.Duration so "30s" and integer nanoseconds
// both work.
type JsonConfig struct {
	APIBaseURL                 string          `json:"api_url"`
	Token                      string          `json:"token"`
	RequestTimeout             *timex.Duration `json:"request_timeout"`
	Concurrency                *int            `json:"concurrency"`
	UploadRate                 *float64        `json:"upload_rate"`
	JournalPath                *string         `json:"journal_path"`
	LogLevel                   string          `json:"log_level"`
	LogFormat                  string          `json:"log_format"`
	PreviewBaseURL             string          `json:"preview_url"`
	S3Bucket                   string          `json:"s3_bucket"`
	S3Region                   string          `json:"s3_region"`
	S3BaseEndpoint             string          `json:"s3_endpoint"`
	S3AccessKey                string          `json:"s3_access_key"`
	S3SecretKey                string          `json:"s3_secret_key"`
	CompensateOnConfirmFailure *bool           `json:"compensate_on_confirm_failure"`
}

// parseJson overlays cfg with the JSON file at path. An empty path is a
// no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.Token, jc.Token)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.PreviewBaseURL, jc.PreviewBaseURL)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Concurrency != nil {
		cfg.Concurrency = *jc.Concurrency
	}
	if jc.UploadRate != nil {
		cfg.UploadRate = *jc.UploadRate
	}
	// An explicit "" disables the journal.
	if jc.JournalPath != nil {
		cfg.JournalPath = *jc.JournalPath
	}
	if jc.CompensateOnConfirmFailure != nil {
		cfg.CompensateOnConfirmFailure = *jc.CompensateOnConfirmFailure
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
