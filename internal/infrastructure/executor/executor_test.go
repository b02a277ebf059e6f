package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/nlsh-go/internal/domain"
)

type stubPrompter struct {
	answer  bool
	err     error
	enabled bool
	asked   int
}

func (s *stubPrompter) Confirm(prompt string) (bool, error) {
	s.asked++
	return s.answer, s.err
}

func (s *stubPrompter) Enabled() bool { return s.enabled }

type stubSecurity struct {
	dangerous map[string]bool
}

func (s stubSecurity) Evaluate(command string) (domain.RiskAssessment, error) {
	if s.dangerous[command] {
		return domain.RiskAssessment{Level: domain.RiskHigh, Action: domain.ActionExplicitConfirm}, nil
	}
	return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}, nil
}

func (s stubSecurity) Dangerous(command string) bool { return s.dangerous[command] }

func TestExecuteCapturesOutput(t *testing.T) {
	r := NewRunner("/bin/sh")
	cfg := domain.DefaultExecutionConfig()

	res := r.Execute(context.Background(), "echo hello", cfg)
	if !res.Success {
		t.Fatalf("Execute failed: %+v", res)
	}
	if strings.TrimSpace(res.Output) != "hello" {
		t.Fatalf("Output = %q; want hello", res.Output)
	}
	if res.ExitCode != 0 {
		t.Fatalf("ExitCode = %d; want 0", res.ExitCode)
	}
}

func TestExecuteReportsExitCode(t *testing.T) {
	r := NewRunner("/bin/sh")
	res := r.Execute(context.Background(), "exit 3", domain.DefaultExecutionConfig())
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ExitCode != 3 {
		t.Fatalf("ExitCode = %d; want 3", res.ExitCode)
	}
	if res.Error == "" {
		t.Fatal("expected error message")
	}
}

func TestExecuteSpawnFailure(t *testing.T) {
	r := NewRunner("/nonexistent/shell")
	res := r.Execute(context.Background(), "echo hi", domain.DefaultExecutionConfig())
	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ExitCode != domain.SpawnFailureExitCode {
		t.Fatalf("ExitCode = %d; want %d", res.ExitCode, domain.SpawnFailureExitCode)
	}
}

func TestExecuteDryRun(t *testing.T) {
	r := NewRunner("/bin/sh")
	cfg := domain.DefaultExecutionConfig()
	cfg.DryRun = true

	res := r.Execute(context.Background(), "rm -rf /tmp/x", cfg)
	if !res.Success {
		t.Fatalf("dry run should succeed: %+v", res)
	}
	want := DryRunPrefix + "rm -rf /tmp/x"
	if res.Output != want {
		t.Fatalf("Output = %q; want %q", res.Output, want)
	}
}

func TestExecuteTimeout(t *testing.T) {
	r := NewRunner("/bin/sh")
	cfg := domain.DefaultExecutionConfig()
	cfg.Timeout = 50 * time.Millisecond

	res := r.Execute(context.Background(), "sleep 5", cfg)
	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(res.Error, "deadline") {
		t.Fatalf("Error = %q; want deadline exceeded", res.Error)
	}
}

func TestExecuteWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner("/bin/sh")
	cfg := domain.DefaultExecutionConfig()
	cfg.WorkingDirectory = dir

	res := r.Execute(context.Background(), "pwd", cfg)
	if !res.Success {
		t.Fatalf("Execute failed: %+v", res)
	}
	if !strings.Contains(res.Output, dir) {
		t.Fatalf("Output = %q; want to contain %q", res.Output, dir)
	}
}

func TestExecuteEnvironment(t *testing.T) {
	r := NewRunner("/bin/sh")
	cfg := domain.DefaultExecutionConfig()
	cfg.Environment = map[string]string{"NLSH_TEST_VAR": "marker"}

	res := r.Execute(context.Background(), "echo $NLSH_TEST_VAR", cfg)
	if strings.TrimSpace(res.Output) != "marker" {
		t.Fatalf("Output = %q; want marker", res.Output)
	}
}

func TestSafeExecuteSafeCommandSkipsPrompt(t *testing.T) {
	r := NewRunner("/bin/sh")
	sec := stubSecurity{dangerous: map[string]bool{}}
	// The prompter would decline, but a safe command never reaches it.
	p := &stubPrompter{answer: false, enabled: true}

	res := r.SafeExecute(context.Background(), "echo hi", domain.DefaultExecutionConfig(), sec, p)
	if !res.Success {
		t.Fatalf("SafeExecute failed: %+v", res)
	}
	if strings.TrimSpace(res.Output) != "hi" {
		t.Fatalf("Output = %q; want hi", res.Output)
	}
	if p.asked != 0 {
		t.Fatalf("asked = %d; want 0", p.asked)
	}
}

func TestSafeExecuteDangerousDeclined(t *testing.T) {
	r := NewRunner("/bin/sh")
	sec := stubSecurity{dangerous: map[string]bool{"echo boom": true}}
	p := &stubPrompter{answer: false, enabled: true}

	res := r.SafeExecute(context.Background(), "echo boom", domain.DefaultExecutionConfig(), sec, p)
	if res.Error != "cancelled by user" {
		t.Fatalf("Error = %q; want cancelled by user", res.Error)
	}
	if p.asked != 1 {
		t.Fatalf("asked = %d; want 1", p.asked)
	}
}

func TestSafeExecuteDangerousAccepted(t *testing.T) {
	r := NewRunner("/bin/sh")
	sec := stubSecurity{dangerous: map[string]bool{"echo boom": true}}
	p := &stubPrompter{answer: true, enabled: true}

	res := r.SafeExecute(context.Background(), "echo boom", domain.DefaultExecutionConfig(), sec, p)
	if !res.Success {
		t.Fatalf("SafeExecute failed: %+v", res)
	}
	if p.asked != 1 {
		t.Fatalf("asked = %d; want 1", p.asked)
	}
}

func TestSafeExecuteDangerousWithoutPrompt(t *testing.T) {
	r := NewRunner("/bin/sh")
	sec := stubSecurity{dangerous: map[string]bool{"echo boom": true}}
	p := &stubPrompter{answer: true, enabled: false}

	res := r.SafeExecute(context.Background(), "echo boom", domain.DefaultExecutionConfig(), sec, p)
	if res.Success || !strings.Contains(res.Error, "no prompt available") {
		t.Fatalf("result = %+v; want refusal without a prompt", res)
	}
}

func TestSafeExecutePrompterError(t *testing.T) {
	r := NewRunner("/bin/sh")
	sec := stubSecurity{dangerous: map[string]bool{"echo boom": true}}
	p := &stubPrompter{err: errors.New("input closed"), enabled: true}

	res := r.SafeExecute(context.Background(), "echo boom", domain.DefaultExecutionConfig(), sec, p)
	if res.Success || res.Error != "input closed" {
		t.Fatalf("result = %+v; want prompter error", res)
	}
}

func TestBackgroundLifecycle(t *testing.T) {
	pool := NewBackgroundPool(NewRunner("/bin/sh"))
	id := pool.ExecuteBackground("echo done", domain.DefaultExecutionConfig())
	if id != "job_1" {
		t.Fatalf("job id = %q; want job_1", id)
	}

	deadline := time.After(5 * time.Second)
	for {
		if res, ok := pool.PollBackground(id); ok {
			if strings.TrimSpace(res.Output) != "done" {
				t.Fatalf("Output = %q; want done", res.Output)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("job never finished")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Finished jobs are removed after the first successful poll.
	if _, ok := pool.PollBackground(id); ok {
		t.Fatal("second poll should report unknown job")
	}
}

func TestBackgroundCancel(t *testing.T) {
	pool := NewBackgroundPool(NewRunner("/bin/sh"))
	id := pool.ExecuteBackground("sleep 5", domain.DefaultExecutionConfig())

	if !pool.CancelBackground(id) {
		t.Fatal("cancel of known job should succeed")
	}
	if pool.CancelBackground(id) {
		t.Fatal("cancel of removed job should fail")
	}
	if _, ok := pool.PollBackground(id); ok {
		t.Fatal("cancelled job should be unknown")
	}
}

func TestBackgroundMonotonicIDs(t *testing.T) {
	pool := NewBackgroundPool(NewRunner("/bin/sh"))
	first := pool.ExecuteBackground("true", domain.DefaultExecutionConfig())
	second := pool.ExecuteBackground("true", domain.DefaultExecutionConfig())
	if first != "job_1" || second != "job_2" {
		t.Fatalf("ids = %q, %q; want job_1, job_2", first, second)
	}
}
