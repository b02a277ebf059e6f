// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces let the pipeline remain independent of specific
// implementations like databases, the host shell, or the CLI framework.
package ports

import (
	"context"

	"github.com/doeshing/nlsh-go/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.nlsh/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SecurityService evaluates a final generated command string against the
// guardrail rules. The check is textual; user intent is never consulted.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
	Dangerous(command string) bool
}

// CommandRunner executes a shell command string.
type CommandRunner interface {
	Execute(ctx context.Context, command string, cfg domain.ExecutionConfig) domain.CommandResult
}

// BackgroundRunner tracks asynchronous executions by opaque job id.
//
// Cancel only removes the bookkeeping entry; it cannot stop an already
// spawned process (soft-cancel semantics).
type BackgroundRunner interface {
	ExecuteBackground(command string, cfg domain.ExecutionConfig) string
	// PollBackground is a non-blocking poll. The ok result is false both for
	// unknown job ids and for jobs still running; the API boundary does not
	// distinguish the two.
	PollBackground(jobID string) (domain.CommandResult, bool)
	CancelBackground(jobID string) bool
}

// ConfirmationPrompter asks the user to approve a risky command before it
// runs. Injected capability, never a stored function pointer.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
	Enabled() bool
}

// OutputSink receives line-oriented text produced by the interactive loop.
type OutputSink interface {
	Write(text string)
}

// FeedbackRepository persists the append-only feedback log and the derived
// learned mappings. Save and Load are durable, not stubs.
type FeedbackRepository interface {
	Append(entry domain.FeedbackEntry) error
	Entries() ([]domain.FeedbackEntry, error)
	SaveMappings(mappings map[string]string) error
	LoadMappings() (map[string]string, error)
}

// HistoryRepository persists executed command records across restarts.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Records(limit int, search string) ([]domain.HistoryRecord, error)
	Clear() error
	Path() string
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}

// Clipboard provides cross-platform clipboard integration for copying
// generated commands.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}
