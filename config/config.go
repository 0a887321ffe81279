// Package config snapshots the process environment at startup and
// exposes typed lookups. Deployed installs overlay secrets from AWS
// SSM Parameter Store on top of the snapshot.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is a point-in-time snapshot of the environment. Lookups on a
// nil Config return the fallback.
type Config map[string]string

// Load snapshots the current environment
func Load() Config {
	environ := os.Environ()
	cfg := make(Config, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			cfg[key] = value
		}
	}
	return cfg
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func (c Config) GetString(key, fallback string) string {
	if val, ok := c[key]; ok {
		return val
	}
	return fallback
}

func (c Config) GetInt(key string, fallback int) int {
	s, ok := c[key]
	if !ok {
		return fallback
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return asInt
}

// GetSeconds reads an integer number of seconds, used for the server
// timeout knobs.
func (c Config) GetSeconds(key string, fallback int) time.Duration {
	return time.Duration(c.GetInt(key, fallback)) * time.Second
}

// GetSlice reads a comma-separated list, used for ACCEPTED_ORIGINS.
func (c Config) GetSlice(key, fallback string) []string {
	return strings.Split(c.GetString(key, fallback), ",")
}
