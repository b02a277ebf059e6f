package domain

import "time"

// ExecutionConfig is supplied by the caller per execution.
type ExecutionConfig struct {
	DryRun           bool
	CaptureOutput    bool
	Timeout          time.Duration
	WorkingDirectory string
	Environment      map[string]string
	Interactive      bool
}

// DefaultExecutionConfig mirrors the documented defaults: output captured,
// 60 second timeout.
func DefaultExecutionConfig() ExecutionConfig {
	return ExecutionConfig{
		CaptureOutput: true,
		Timeout:       60 * time.Second,
	}
}

// SpawnFailureExitCode is the sentinel exit code reported when the shell
// process could not be started at all.
const SpawnFailureExitCode = -1
