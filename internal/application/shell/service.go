// Package shell composes the recognition, generation, safety, and execution
// components into the end-to-end text pipeline.
package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/infrastructure/complete"
	"github.com/doeshing/nlsh-go/internal/infrastructure/disambiguate"
	"github.com/doeshing/nlsh-go/internal/infrastructure/entity"
	"github.com/doeshing/nlsh-go/internal/infrastructure/feedback"
	"github.com/doeshing/nlsh-go/internal/infrastructure/generate"
	"github.com/doeshing/nlsh-go/internal/infrastructure/intent"
	"github.com/doeshing/nlsh-go/internal/infrastructure/session"
	"github.com/doeshing/nlsh-go/internal/ports"
)

// correctionSimilarityFloor is the minimum character-set overlap for a
// history entry to count as a plausible correction of a failed input.
const correctionSimilarityFloor = 0.6

// alternativeMargin bounds how far below the winning score a competing
// intent may sit and still count as a plausible alternative. Anything
// further behind is noise, not ambiguity.
const alternativeMargin = 0.1

// Deps lists everything a Service needs. All fields are required unless
// noted.
type Deps struct {
	Recognizer    *intent.Recognizer
	Extractor     *entity.Extractor
	Generator     *generate.Generator
	Session       *session.Manager
	Disambiguator *disambiguate.Disambiguator
	Learner       *feedback.Learner
	Completer     *complete.Completer

	ConfigProvider ports.ConfigProvider
	Security       ports.SecurityService
	Runner         ports.CommandRunner
	Background     ports.BackgroundRunner // optional
	Prompter       ports.ConfirmationPrompter
	Output         ports.OutputSink
	History        ports.HistoryRepository // optional
	Logger         ports.Logger
}

// Interpretation is the outcome of one interpretation pass: either a command
// ready to run or a clarifying question with options.
type Interpretation struct {
	Command  domain.ParsedCommand
	Question string
	Options  []disambiguate.Option
}

// Service is one explicitly constructed shell session. Callers own the value
// and pass it where needed; there is no process-wide instance.
type Service struct {
	deps      Deps
	sessionID string

	mu              sync.Mutex
	stats           domain.SessionStats
	totalConfidence float64
}

// NewService builds a session around the given dependencies.
func NewService(deps Deps) *Service {
	return &Service{
		deps:      deps,
		sessionID: uuid.NewString(),
	}
}

// SessionID identifies this session in persisted history records.
func (s *Service) SessionID() string {
	return s.sessionID
}

// Parse turns raw input into a ParsedCommand. The result is built once and
// never mutated; calling Parse twice with no intervening state change yields
// the same canonical form.
func (s *Service) Parse(input string) domain.ParsedCommand {
	resolved := s.resolveInput(input)

	// An exact learned mapping always wins over the scored pipeline.
	if override, ok := s.deps.Learner.LearnedMapping(resolved); ok {
		return domain.ParsedCommand{
			OriginalInput: input,
			CanonicalForm: override,
			Category:      domain.CategoryCustom,
			Action:        "learned_mapping",
			Confidence:    1.0,
		}
	}

	best, score, ok := s.deps.Recognizer.BestIntent(resolved)
	if !ok {
		return domain.ParsedCommand{
			OriginalInput: input,
			Category:      domain.CategoryUnknown,
			Confidence:    score,
		}
	}

	slots := s.deps.Recognizer.ExtractSlots(resolved, best)
	slots = s.fillSlots(resolved, slots)

	cmd := domain.ParsedCommand{
		OriginalInput: resolved,
		Category:      best.Category,
		Action:        best.Name,
		Slots:         slots,
		Flags:         map[string]string{},
		Confidence:    score,
		Alternatives:  s.alternatives(resolved, best.Name, score),
	}

	if best.Generator != nil {
		cmd.CanonicalForm = best.Generator(cmd)
	} else {
		cmd.CanonicalForm = s.deps.Generator.Generate(cmd)
	}

	if cmd.CanonicalForm != "" && s.deps.Security.Dangerous(cmd.CanonicalForm) {
		cmd.RequiresConfirm = true
		cmd.ConfirmationMessage = fmt.Sprintf("%q is potentially destructive. Run it anyway?", cmd.CanonicalForm)
	}
	return cmd
}

// Translate returns the shell command for an input without executing it.
func (s *Service) Translate(input string) (string, error) {
	cmd := s.Parse(input)
	if cmd.CanonicalForm == "" {
		return "", fmt.Errorf("could not understand input: %q", input)
	}
	return cmd.CanonicalForm, nil
}

// Interpret parses the input and applies the disambiguation gate. A
// non-empty Question means the command is not safe to run as parsed.
func (s *Service) Interpret(input string) Interpretation {
	cmd := s.Parse(input)
	in := Interpretation{Command: cmd}

	if cmd.CanonicalForm != "" && s.deps.Disambiguator.NeedsDisambiguation(cmd) {
		in.Question = s.deps.Disambiguator.Question(cmd)
		in.Options = s.deps.Disambiguator.Options(cmd)
		if len(in.Options) == 0 {
			in.Options = s.slotSuggestions(cmd)
		}
		// Only an actually posed question counts as a disambiguation.
		if in.Question != "" {
			s.mu.Lock()
			s.stats.Disambiguations++
			s.mu.Unlock()
		}
	}
	return in
}

// slotSuggestions offers directory entries as candidate answers when the
// missing slot names a file or path.
func (s *Service) slotSuggestions(cmd domain.ParsedCommand) []disambiguate.Option {
	missing := cmd.MissingRequiredSlots()
	if len(missing) == 0 {
		return nil
	}
	switch missing[0] {
	case "path", "filename", "source", "destination", "dirname":
	default:
		return nil
	}
	var options []disambiguate.Option
	for _, path := range s.deps.Disambiguator.SuggestPaths("") {
		options = append(options, disambiguate.Option{Description: path, Command: path, Score: 0.5})
		if len(options) == 5 {
			break
		}
	}
	return options
}

// Execute runs the full parse, disambiguate, confirm, execute, record
// pipeline for one input line.
func (s *Service) Execute(ctx context.Context, input string) domain.CommandResult {
	cfg, err := s.deps.ConfigProvider.Load(ctx)
	if err != nil {
		s.deps.Logger.Error("load config", err, nil)
		return domain.CommandResult{Error: err.Error()}
	}

	in := s.Interpret(input)
	cmd := in.Command

	if cmd.CanonicalForm == "" {
		return domain.CommandResult{
			Error:             fmt.Sprintf("could not understand input: %q", input),
			SuggestedFollowup: s.followupFor(input),
		}
	}

	if in.Question != "" {
		return domain.CommandResult{Error: in.Question}
	}

	if cmd.RequiresConfirm {
		risk, evalErr := s.deps.Security.Evaluate(cmd.CanonicalForm)
		if evalErr == nil && risk.Action == domain.ActionBlock {
			return domain.CommandResult{Error: fmt.Sprintf("command blocked by guardrail: %s", cmd.CanonicalForm)}
		}
		if s.deps.Prompter == nil || !s.deps.Prompter.Enabled() {
			return domain.CommandResult{Error: "confirmation required but no prompt available"}
		}
		ok, promptErr := s.deps.Prompter.Confirm(cmd.ConfirmationMessage)
		if promptErr != nil {
			return domain.CommandResult{Error: promptErr.Error()}
		}
		if !ok {
			return domain.CommandResult{Error: "cancelled by user"}
		}
	}

	execCfg := executionConfig(cfg)
	result := s.deps.Runner.Execute(ctx, cmd.CanonicalForm, execCfg)

	s.recordOutcome(cmd, result)
	return result
}

// ExecuteBackground starts the generated command asynchronously and returns
// its job id. Inputs that fail to parse or need clarification report an
// error instead.
func (s *Service) ExecuteBackground(ctx context.Context, input string) (string, error) {
	if s.deps.Background == nil {
		return "", fmt.Errorf("background execution not available")
	}
	cfg, err := s.deps.ConfigProvider.Load(ctx)
	if err != nil {
		return "", err
	}
	in := s.Interpret(input)
	if in.Question != "" {
		return "", fmt.Errorf("%s", in.Question)
	}
	if in.Command.CanonicalForm == "" {
		return "", fmt.Errorf("could not understand input: %q", input)
	}
	s.mu.Lock()
	s.stats.TotalCommands++
	s.totalConfidence += in.Command.Confidence
	s.mu.Unlock()
	return s.deps.Background.ExecuteBackground(in.Command.CanonicalForm, executionConfig(cfg)), nil
}

// ProcessLine handles one line of the interactive loop, writing responses to
// the output sink. It returns false when the user asked to leave.
func (s *Service) ProcessLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	if line == "exit" || line == "quit" {
		return false
	}

	// "set NAME=value" and "alias name=command" adjust session state
	// directly instead of going through the pipeline.
	if name, value, ok := assignment(line, "set "); ok {
		s.deps.Session.SetVariable(name, value)
		s.deps.Output.Write(fmt.Sprintf("%s = %s", name, value))
		return true
	}
	if name, value, ok := assignment(line, "alias "); ok {
		s.deps.Session.SetAlias(name, value)
		s.deps.Output.Write(fmt.Sprintf("alias %s = %s", name, value))
		return true
	}

	result := s.Execute(ctx, line)
	switch {
	case result.Error != "":
		s.deps.Output.Write(result.Error)
	case result.Output != "":
		s.deps.Output.Write(strings.TrimRight(result.Output, "\n"))
	case result.Success:
		s.deps.Output.Write("ok")
	}
	return true
}

// RecordFeedback stores one correctness judgement for a prior generation and
// rebuilds the learned mappings.
func (s *Service) RecordFeedback(input, generated string, correct bool, correction string) {
	s.deps.Learner.Record(input, generated, correct, correction)
	s.deps.Learner.LearnFromFeedback()
	if !correct {
		s.mu.Lock()
		s.stats.Corrections++
		s.mu.Unlock()
	}
}

// Explain describes what a shell command does in one line.
func (s *Service) Explain(command string) string {
	command = strings.TrimSpace(command)
	if command == "" {
		return "nothing to explain"
	}
	fields := strings.Fields(command)
	desc, ok := commandDescriptions[fields[0]]
	if !ok {
		return fmt.Sprintf("%s: no description available", fields[0])
	}
	if len(fields) > 1 {
		return fmt.Sprintf("%s: %s (arguments: %s)", fields[0], desc, strings.Join(fields[1:], " "))
	}
	return fmt.Sprintf("%s: %s", fields[0], desc)
}

// Suggest returns ranked completions for a partial input line.
func (s *Service) Suggest(partial string, limit int) []domain.CompletionItem {
	return s.deps.Completer.Complete(partial, limit)
}

// SuggestCorrection searches session history for the most recent command
// whose character set overlaps the failed input enough to be a likely
// intended command.
func (s *Service) SuggestCorrection(failed string) (string, bool) {
	history := s.deps.Session.History(0)
	for i := len(history) - 1; i >= 0; i-- {
		if history[i] == failed {
			continue
		}
		if charSetSimilarity(failed, history[i]) > correctionSimilarityFloor {
			return history[i], true
		}
	}
	return "", false
}

// Stats returns a read-only snapshot of the session counters.
func (s *Service) Stats() domain.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := s.stats
	if stats.TotalCommands > 0 {
		stats.AvgConfidence = s.totalConfidence / float64(stats.TotalCommands)
	}
	return stats
}

// ListIntents exposes the registered intents sorted by name.
func (s *Service) ListIntents() []domain.Intent {
	return s.deps.Recognizer.List()
}

// RegisterIntent adds or replaces an intent at runtime.
func (s *Service) RegisterIntent(in domain.Intent) {
	s.deps.Recognizer.Register(in)
}

// resolveInput applies alias expansion, variable expansion, and pronoun
// reference rewriting, in that order.
func (s *Service) resolveInput(input string) string {
	text := strings.TrimSpace(input)
	if fields := strings.Fields(text); len(fields) > 0 {
		if expansion, ok := s.deps.Session.Alias(fields[0]); ok {
			text = expansion + strings.TrimPrefix(text, fields[0])
		}
	}
	text = s.deps.Session.ExpandVariables(text)
	return s.deps.Session.ResolveReference(text)
}

// fillSlots satisfies empty required slots with extracted entities of a
// compatible type. Each entity value is consumed at most once.
func (s *Service) fillSlots(input string, slots []domain.ParsedSlot) []domain.ParsedSlot {
	entities := s.deps.Extractor.Extract(input)
	used := make(map[string]bool)

	for i := range slots {
		if slots[i].Value != "" {
			continue
		}
		for _, ent := range entities {
			if used[ent.Normalized] || !slotAccepts(slots[i].Name, ent.Type) {
				continue
			}
			slots[i].Value = ent.Normalized
			slots[i].Type = string(ent.Type)
			slots[i].Confidence = ent.Confidence
			used[ent.Normalized] = true
			break
		}
	}
	return slots
}

// alternatives lists competing intents close enough to the winner to be
// worth asking about. Recognize returns scores in descending order, so the
// scan stops at the first one outside the margin.
func (s *Service) alternatives(input, bestName string, bestScore float64) []string {
	var alts []string
	for _, score := range s.deps.Recognizer.Recognize(input) {
		if score.Score < domain.BestIntentThreshold || bestScore-score.Score > alternativeMargin {
			break
		}
		if score.Name == bestName {
			continue
		}
		alts = append(alts, score.Name)
		if len(alts) == 3 {
			break
		}
	}
	return alts
}

// recordOutcome updates stats, session state, and persisted history after an
// execution attempt. Only executed commands count toward the totals;
// parse-only calls and gated inputs leave the counters alone.
func (s *Service) recordOutcome(cmd domain.ParsedCommand, result domain.CommandResult) {
	s.mu.Lock()
	s.stats.TotalCommands++
	s.totalConfidence += cmd.Confidence
	if result.Success {
		s.stats.SuccessfulCommands++
	} else {
		s.stats.FailedCommands++
	}
	s.mu.Unlock()

	s.deps.Session.AddCommand(cmd.CanonicalForm)
	s.deps.Session.UpdateFromResult(result)
	for _, slot := range cmd.Slots {
		if slot.Type == string(domain.EntityPath) || slot.Type == string(domain.EntityFilename) || slot.Name == "path" {
			if slot.Value != "" {
				s.deps.Session.NoteFile(slot.Value)
			}
		}
	}
	s.deps.Session.Refresh()

	if s.deps.History != nil {
		risk := domain.RiskSafe
		if assessment, err := s.deps.Security.Evaluate(cmd.CanonicalForm); err == nil {
			risk = assessment.Level
		}
		record := domain.HistoryRecord{
			Timestamp:       time.Now(),
			SessionID:       s.sessionID,
			Input:           cmd.OriginalInput,
			Command:         cmd.CanonicalForm,
			Executed:        true,
			Success:         result.Success,
			ExitCode:        result.ExitCode,
			RiskLevel:       risk,
			ExecutionTimeMS: result.Duration.Milliseconds(),
		}
		if err := s.deps.History.Save(record); err != nil {
			s.deps.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// assignment parses "<prefix>name=value" lines; both halves must be
// non-empty.
func assignment(line, prefix string) (string, string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	name, value, found := strings.Cut(rest, "=")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !found || name == "" || value == "" {
		return "", "", false
	}
	return name, value, true
}

func (s *Service) followupFor(input string) string {
	if suggestion, ok := s.SuggestCorrection(input); ok {
		return suggestion
	}
	return ""
}

func executionConfig(cfg domain.Config) domain.ExecutionConfig {
	execCfg := domain.DefaultExecutionConfig()
	execCfg.DryRun = cfg.Execution.DryRun
	if cfg.Execution.TimeoutSeconds > 0 {
		execCfg.Timeout = time.Duration(cfg.Execution.TimeoutSeconds) * time.Second
	}
	return execCfg
}

func slotAccepts(name string, typ domain.EntityType) bool {
	switch name {
	case "path", "filename", "source", "destination", "dirname":
		return typ == domain.EntityPath || typ == domain.EntityFilename
	case "pattern", "file_pattern":
		return typ == domain.EntityPattern
	case "process", "number":
		return typ == domain.EntityNumber
	case "variable":
		return typ == domain.EntityVariable
	default:
		return false
	}
}

// charSetSimilarity is the Jaccard index over the rune sets of two strings.
func charSetSimilarity(a, b string) float64 {
	setA := make(map[rune]bool)
	setB := make(map[rune]bool)
	for _, r := range a {
		setA[r] = true
	}
	for _, r := range b {
		setB[r] = true
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for r := range setA {
		if setB[r] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

var commandDescriptions = map[string]string{
	"ls":    "list directory contents",
	"cd":    "change the working directory",
	"pwd":   "print the working directory",
	"cat":   "print file contents",
	"touch": "create an empty file or update its timestamp",
	"rm":    "remove files or directories",
	"cp":    "copy files",
	"mv":    "move or rename files",
	"mkdir": "create directories",
	"find":  "search for files by name or attribute",
	"grep":  "search file contents for a pattern",
	"git":   "run a version control operation",
	"ps":    "list running processes",
	"kill":  "send a signal to a process",
	"pkill": "signal processes by name",
	"date":  "print the current date or time",
	"env":   "print environment variables",
	"echo":  "print text",
}
