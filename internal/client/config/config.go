package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/photodesk/internal/common"
)

// Config holds runtime settings for the photodesk CLI.
type Config struct {
	APIBaseURL     string
	Token          string
	RequestTimeout time.Duration

	// Concurrency is the number of files uploaded at once; 1 is sequential.
	Concurrency int
	// UploadRate caps new file starts per second; 0 disables the cap.
	UploadRate float64

	// JournalPath is the SQLite upload journal; empty disables journaling.
	JournalPath string

	LogLevel  string
	LogFormat string

	// PreviewBaseURL, when set, is prefixed to preview keys in listings.
	PreviewBaseURL string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string

	// CompensateOnConfirmFailure deletes stored bytes whose confirm failed.
	// Requires S3 access.
	CompensateOnConfirmFailure bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.RequestTimeout = 30 * time.Second
	c.Concurrency = 1
	c.JournalPath = "photodesk.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
}

func Defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// HasS3 reports whether direct blob store access is configured.
func (c *Config) HasS3() bool { return c.S3Bucket != "" }

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api url %q must be an absolute http(s) url", c.APIBaseURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}
	if c.Concurrency < 1 {
		errs = append(errs, errors.New("concurrency must be at least 1"))
	}
	if c.UploadRate < 0 {
		errs = append(errs, errors.New("upload rate must not be negative"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.LogFormat))
	}
	if c.CompensateOnConfirmFailure && !c.HasS3() {
		errs = append(errs, errors.New("compensation needs an s3 bucket"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	return nil
}
