package main

import "time"

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIRun is a JSON-friendly saved run representation.
type CLIRun struct {
	ID          int64     `json:"id"`
	Path        string    `json:"path"`
	CollectedAt time.Time `json:"collected_at"`
	ModuleCount int       `json:"module_count"`
	TestCount   int       `json:"test_count"`
}
