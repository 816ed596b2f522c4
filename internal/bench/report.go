package bench

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
)

// WriteReport overwrites path with r as indented JSON.
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("bench: encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("bench: write report: %w", err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("bench: decode report: %w", err)
	}
	return r, nil
}

// Loop runs a cycle, rewrites the report at path and waits for the next
// tick, until ctx is done or cfg.Cycles cycles have run. Cycle and write
// failures go to onCycle and do not stop the loop; a canceled context ends
// it with a nil error.
func Loop(ctx context.Context, cfg Config, path string, interval time.Duration, onCycle func(n int, r Report, err error)) error {
	if interval <= 0 {
		return fmt.Errorf("bench: interval must be positive, got %s", interval)
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for n := 1; ; n++ {
		r, err := RunCycle(ctx, cfg)
		if ctx.Err() != nil {
			return nil
		}
		if err == nil {
			err = WriteReport(path, r)
		}
		if onCycle != nil {
			onCycle(n, r, err)
		}
		if cfg.Cycles > 0 && n >= cfg.Cycles {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
