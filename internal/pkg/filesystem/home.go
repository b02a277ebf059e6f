// Package filesystem locates the per-user directories nlsh keeps state in.
package filesystem

import (
	"os"
	"path/filepath"
)

// UserHomeDir returns the current user's home directory, falling back to
// "." when it cannot be determined.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// StateDir returns the directory holding nlsh state: config, guardrail
// rules, history, and feedback. NLSH_HOME overrides the default ~/.nlsh.
func StateDir() string {
	if dir := os.Getenv("NLSH_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(UserHomeDir(), ".nlsh")
}
