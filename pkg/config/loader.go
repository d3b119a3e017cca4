package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read by Load when it exists.
const DefaultEnvFile = ".env"

// Load parses environment variables into the provided struct. Values from a
// .env file in the working directory are applied first; variables already set
// in the process environment win.
//
// Example:
//
//	type Config struct {
//	    Port     int    `env:"HTTP_PORT" envDefault:"5000"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	}
func Load(cfg any) error {
	return LoadFiles(cfg, DefaultEnvFile)
}

// LoadFiles is like Load but reads the given dotenv files. Missing files are
// skipped; malformed ones are reported.
func LoadFiles(cfg any, files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read env file %s: %w", f, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}
