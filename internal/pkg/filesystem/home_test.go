package filesystem

import (
	"path/filepath"
	"testing"
)

func TestStateDirHonorsOverride(t *testing.T) {
	t.Setenv("NLSH_HOME", "/tmp/nlsh-state")
	if got := StateDir(); got != "/tmp/nlsh-state" {
		t.Fatalf("StateDir = %q; want /tmp/nlsh-state", got)
	}
}

func TestStateDirDefault(t *testing.T) {
	t.Setenv("NLSH_HOME", "")
	want := filepath.Join(UserHomeDir(), ".nlsh")
	if got := StateDir(); got != want {
		t.Fatalf("StateDir = %q; want %q", got, want)
	}
}
