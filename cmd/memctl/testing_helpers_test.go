package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// resetFlags restores global flags to their defaults.
func resetFlags() {
	verbose, quiet, jsonOut, logDir = false, false, false, ""

	benchReport, benchOpLog = "", ""
	benchInterval, benchCount, benchSeed = 0, 0, 1
	benchAllocations, benchMaxSize = 100, 256
	benchCapacity, benchParallel = 4<<20, false

	simPolicy, simOps, simSeed = "first-fit", 500, 1
	simMaxSize, simCapacity, simDump = 512, 8<<20, false
}
