// Package config reads the external settings of the benchmark driver and
// the operation logger from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables.
const (
	ReportPathEnv = "JSON_PATH"
	LogPathEnv    = "LOG_FILE_PATH"
	IntervalEnv   = "BENCH_INTERVAL"
)

// ErrNotSet indicates a required setting is missing or empty.
var ErrNotSet = errors.New("config: not set")

// ReportPath returns the file the benchmark report is written to.
func ReportPath() (string, error) {
	return lookup(ReportPathEnv)
}

// LogPath returns the operation log file.
func LogPath() (string, error) {
	return lookup(LogPathEnv)
}

// Interval returns the report rewrite interval, or def when unset.
func Interval(def time.Duration) (time.Duration, error) {
	v, err := lookup(IntervalEnv)
	if errors.Is(err, ErrNotSet) {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", IntervalEnv, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", IntervalEnv, d)
	}
	return d, nil
}

func lookup(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s", ErrNotSet, key)
	}
	return v, nil
}
