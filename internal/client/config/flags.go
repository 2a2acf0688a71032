package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared with the CLI.
const (
	FlagConfig      = "config"
	FlagEnvFile     = "env-file"
	FlagAPIURL      = "api-url"
	FlagToken       = "token"
	FlagTimeout     = "timeout"
	FlagConcurrency = "concurrency"
	FlagUploadRate  = "rate"
	FlagJournal     = "journal"
	FlagLogLevel    = "log-level"
	FlagLogFormat   = "log-format"
	FlagPreviewURL  = "preview-url"
	FlagS3Bucket    = "s3-bucket"
	FlagS3Region    = "s3-region"
	FlagS3Endpoint  = "s3-endpoint"
	FlagS3AccessKey = "s3-access-key"
	FlagS3SecretKey = "s3-secret-key"
	FlagCompensate  = "compensate"
)

// RegisterFlags declares the configuration flags on fs with the built-in
// defaults shown in help output.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults()

	fs.StringP(FlagConfig, "c", "", "path to a JSON config file")
	fs.String(FlagEnvFile, ".env", "dotenv file merged into the environment")
	fs.StringP(FlagAPIURL, "a", d.APIBaseURL, "backend API base url")
	fs.StringP(FlagToken, "t", "", "bearer token for admin endpoints")
	fs.Duration(FlagTimeout, d.RequestTimeout, "per-request timeout")
	fs.IntP(FlagConcurrency, "j", d.Concurrency, "files uploaded in parallel")
	fs.Float64(FlagUploadRate, d.UploadRate, "max new uploads per second (0 = unlimited)")
	fs.String(FlagJournal, d.JournalPath, "upload journal database (empty disables)")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text or json")
	fs.String(FlagPreviewURL, d.PreviewBaseURL, "base url prefixed to preview keys")
	fs.String(FlagS3Bucket, d.S3Bucket, "bucket holding uploaded photos")
	fs.String(FlagS3Region, d.S3Region, "bucket region")
	fs.String(FlagS3Endpoint, d.S3BaseEndpoint, "S3-compatible endpoint, e.g. http://127.0.0.1:9000")
	fs.String(FlagS3AccessKey, d.S3AccessKey, "S3 access key")
	fs.String(FlagS3SecretKey, d.S3SecretKey, "S3 secret key")
	fs.Bool(FlagCompensate, d.CompensateOnConfirmFailure, "delete stored bytes when confirmation fails")
}

// parseFlags overlays cfg with the flags the user actually set, so a flag's
// default never hides a value from the environment or the JSON file.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	strs := map[string]*string{
		FlagAPIURL:      &cfg.APIBaseURL,
		FlagToken:       &cfg.Token,
		FlagJournal:     &cfg.JournalPath,
		FlagLogLevel:    &cfg.LogLevel,
		FlagLogFormat:   &cfg.LogFormat,
		FlagPreviewURL:  &cfg.PreviewBaseURL,
		FlagS3Bucket:    &cfg.S3Bucket,
		FlagS3Region:    &cfg.S3Region,
		FlagS3Endpoint:  &cfg.S3BaseEndpoint,
		FlagS3AccessKey: &cfg.S3AccessKey,
		FlagS3SecretKey: &cfg.S3SecretKey,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	var err error
	if fs.Changed(FlagTimeout) {
		if cfg.RequestTimeout, err = fs.GetDuration(FlagTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(FlagConcurrency) {
		if cfg.Concurrency, err = fs.GetInt(FlagConcurrency); err != nil {
			return err
		}
	}
	if fs.Changed(FlagUploadRate) {
		if cfg.UploadRate, err = fs.GetFloat64(FlagUploadRate); err != nil {
			return err
		}
	}
	if fs.Changed(FlagCompensate) {
		if cfg.CompensateOnConfirmFailure, err = fs.GetBool(FlagCompensate); err != nil {
			return err
		}
	}
	return nil
}

func flagString(fs *pflag.FlagSet, name string) string {
	if fs == nil || fs.Lookup(name) == nil {
		return ""
	}
	v, _ := fs.GetString(name)
	return v
}
