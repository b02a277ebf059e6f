// Package executor runs generated shell commands on the host, synchronously
// or as tracked background jobs.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/ports"
)

// DryRunPrefix marks output produced without spawning a process.
const DryRunPrefix = "[DRY RUN] Would execute: "

// Runner executes commands through the host shell.
type Runner struct {
	shell string
}

// NewRunner builds a runner, shell defaults to $SHELL then /bin/sh.
func NewRunner(shell string) *Runner {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &Runner{shell: shell}
}

// Execute implements ports.CommandRunner. The timeout from cfg is enforced
// through the context; on expiry the process is killed and the result carries
// the context error.
func (r *Runner) Execute(ctx context.Context, command string, cfg domain.ExecutionConfig) domain.CommandResult {
	if cfg.DryRun {
		return domain.CommandResult{
			Success:  true,
			Output:   DryRunPrefix + command,
			ExitCode: 0,
		}
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, r.shell, "-c", command)
	if cfg.WorkingDirectory != "" {
		c.Dir = cfg.WorkingDirectory
	}
	if len(cfg.Environment) > 0 {
		c.Env = os.Environ()
		for key, value := range cfg.Environment {
			c.Env = append(c.Env, key+"="+value)
		}
	}

	var combined bytes.Buffer
	if cfg.CaptureOutput {
		c.Stdout = &combined
		c.Stderr = &combined
	} else {
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	}
	if cfg.Interactive {
		c.Stdin = os.Stdin
	}

	start := time.Now()
	err := c.Run()
	duration := time.Since(start)

	result := domain.CommandResult{
		Output:   combined.String(),
		Duration: duration,
	}

	switch {
	case err == nil:
		result.Success = true
		result.ExitCode = 0
	case ctx.Err() != nil:
		result.Error = ctx.Err().Error()
		result.ExitCode = exitCodeOf(err)
	default:
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// The shell itself could not be started.
			result.ExitCode = domain.SpawnFailureExitCode
		}
		result.Error = err.Error()
	}
	return result
}

// SafeExecute checks the command against the guardrail and runs it directly
// when nothing dangerous is found. Dangerous commands are confirmed through
// the prompter first; a decline reports a cancelled result.
func (r *Runner) SafeExecute(ctx context.Context, command string, cfg domain.ExecutionConfig, security ports.SecurityService, prompter ports.ConfirmationPrompter) domain.CommandResult {
	if security != nil && security.Dangerous(command) {
		if prompter == nil || !prompter.Enabled() {
			return domain.CommandResult{Error: "confirmation required but no prompt available", ExitCode: domain.SpawnFailureExitCode}
		}
		ok, err := prompter.Confirm(fmt.Sprintf("%q is potentially destructive. Run it anyway?", command))
		if err != nil {
			return domain.CommandResult{Error: err.Error(), ExitCode: domain.SpawnFailureExitCode}
		}
		if !ok {
			return domain.CommandResult{Error: "cancelled by user", ExitCode: 0}
		}
	}
	return r.Execute(ctx, command, cfg)
}

func exitCodeOf(err error) int {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return domain.SpawnFailureExitCode
}

var _ ports.CommandRunner = (*Runner)(nil)
