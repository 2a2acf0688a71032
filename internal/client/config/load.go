package config

import (
	"os"

	"github.com/spf13/pflag"
)

// LoadConfig builds a Config from, in increasing precedence: defaults, the
// JSON file, PHOTODESK_* environment variables (after merging the dotenv
// file) and the flags set on fs. fs may be nil. The result is validated.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	return load(fs, os.LookupEnv)
}

func load(fs *pflag.FlagSet, lookup lookupFunc) (*Config, error) {
	if err := loadDotEnv(flagString(fs, FlagEnvFile)); err != nil {
		return nil, err
	}

	cfg := Defaults()

	path := flagString(fs, FlagConfig)
	if path == "" {
		path = envValue(lookup, envConfigFile)
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
