package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "PHOTODESK_"

// Environment variable names, without the PHOTODESK_ prefix.
const (
	envAPIURL      = "API_URL"
	envToken       = "TOKEN"
	envTimeout     = "TIMEOUT"
	envConcurrency = "CONCURRENCY"
	envUploadRate  = "UPLOAD_RATE"
	envJournal     = "JOURNAL"
	envLogLevel    = "LOG_LEVEL"
	envLogFormat   = "LOG_FORMAT"
	envPreviewURL  = "PREVIEW_URL"
	envS3Bucket    = "S3_BUCKET"
	envS3Region    = "S3_REGION"
	envS3Endpoint  = "S3_ENDPOINT"
	envS3AccessKey = "S3_ACCESS_KEY"
	envS3SecretKey = "S3_SECRET_KEY"
	envCompensate  = "COMPENSATE"
	envConfigFile  = "CONFIG"
)

type lookupFunc func(key string) (string, bool)

// loadDotEnv loads path into the process environment. Variables already set
// win; a missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func lookupEnv(lookup lookupFunc) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := lookup(envPrefix + key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}
}

// parseEnv overlays cfg with PHOTODESK_* variables.
func parseEnv(cfg *Config, lookup lookupFunc) error {
	get := lookupEnv(lookup)

	strs := map[string]*string{
		envAPIURL:      &cfg.APIBaseURL,
		envToken:       &cfg.Token,
		envJournal:     &cfg.JournalPath,
		envLogLevel:    &cfg.LogLevel,
		envLogFormat:   &cfg.LogFormat,
		envPreviewURL:  &cfg.PreviewBaseURL,
		envS3Bucket:    &cfg.S3Bucket,
		envS3Region:    &cfg.S3Region,
		envS3Endpoint:  &cfg.S3BaseEndpoint,
		envS3AccessKey: &cfg.S3AccessKey,
		envS3SecretKey: &cfg.S3SecretKey,
	}
	for key, dst := range strs {
		if v, ok := get(key); ok {
			*dst = v
		}
	}

	if v, ok := get(envTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get(envConcurrency); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envConcurrency, err)
		}
		cfg.Concurrency = n
	}
	if v, ok := get(envUploadRate); ok {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envUploadRate, err)
		}
		cfg.UploadRate = r
	}
	if v, ok := get(envCompensate); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envCompensate, err)
		}
		cfg.CompensateOnConfirmFailure = b
	}
	return nil
}

func envValue(lookup lookupFunc, key string) string {
	v, _ := lookupEnv(lookup)(key)
	return v
}
