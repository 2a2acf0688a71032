// Package config loads runtime configuration for the photodesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file, chosen with --config/-c or PHOTODESK_CONFIG.
//  3. PHOTODESK_* environment variables. A dotenv file (--env-file,
//     default ".env") is merged into the environment first; variables that
//     are already set keep their value.
//  4. Command-line flags, but only those given explicitly.
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds. Every key is optional:
//
//	{
//	  "api_url": "https://api.example.com/api",
//	  "request_timeout": "30s",
//	  "concurrency": 4,
//	  "upload_rate": 2.5,
//	  "journal_path": "photodesk.db",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "s3_bucket": "photos",
//	  "s3_endpoint": "http://127.0.0.1:9000",
//	  "compensate_on_confirm_failure": true
//	}
//
// The bearer token may come from any layer; it is never written back.
package config
