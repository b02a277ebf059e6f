// Package disambiguate decides whether a parsed command is too uncertain to
// execute as-is and produces clarifying questions or suggestions.
package disambiguate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/nlsh-go/internal/domain"
)

// commonExecutables is the fixed vocabulary used for command suggestions.
var commonExecutables = []string{
	"ls", "cd", "pwd", "cat", "rm", "cp", "mv", "mkdir", "touch",
	"find", "grep", "git", "make", "npm", "python", "node",
}

// Option is one alternative offered to the user during disambiguation.
type Option struct {
	Description string
	Command     string
	Score       float64
}

// Disambiguator is stateless; every method operates on a single
// ParsedCommand.
type Disambiguator struct{}

// NewDisambiguator builds a disambiguator.
func NewDisambiguator() *Disambiguator {
	return &Disambiguator{}
}

// NeedsDisambiguation is true when confidence is low, a required slot is
// unresolved, or multiple alternatives are plausible.
func (d *Disambiguator) NeedsDisambiguation(cmd domain.ParsedCommand) bool {
	if cmd.Confidence < domain.LowConfidenceThreshold {
		return true
	}
	if len(cmd.MissingRequiredSlots()) > 0 {
		return true
	}
	return len(cmd.Alternatives) > 1
}

// Options lists the command alternatives.
func (d *Disambiguator) Options(cmd domain.ParsedCommand) []Option {
	options := make([]Option, 0, len(cmd.Alternatives))
	for _, alt := range cmd.Alternatives {
		options = append(options, Option{Description: alt, Command: alt, Score: 0.5})
	}
	return options
}

// Question generates the clarifying question. A missing required slot is
// asked for by name; a low-confidence parse asks for confirmation of the
// canonical form; a close race between intents asks which one was meant.
// Every case NeedsDisambiguation reports true for yields a question.
func (d *Disambiguator) Question(cmd domain.ParsedCommand) string {
	if missing := cmd.MissingRequiredSlots(); len(missing) > 0 {
		return fmt.Sprintf("What %s would you like to use?", missing[0])
	}
	if cmd.Confidence < domain.LowConfidenceThreshold {
		return fmt.Sprintf("Did you mean: %s?", cmd.CanonicalForm)
	}
	if len(cmd.Alternatives) > 1 {
		return fmt.Sprintf("That could be %s or %s. Which did you mean?",
			cmd.Action, strings.Join(cmd.Alternatives, " or "))
	}
	return ""
}

// SuggestPaths returns directory entries whose names extend the partial
// path.
func (d *Disambiguator) SuggestPaths(partial string) []string {
	dir := "."
	prefix := partial
	if idx := strings.LastIndex(partial, "/"); idx >= 0 {
		dir = partial[:idx]
		if dir == "" {
			dir = "/"
		}
		prefix = partial[idx+1:]
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var suggestions []string
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if dir == "." {
			suggestions = append(suggestions, entry.Name())
		} else {
			suggestions = append(suggestions, filepath.Join(dir, entry.Name()))
		}
	}
	return suggestions
}

// SuggestCommands returns prefix matches against the common executable
// vocabulary.
func (d *Disambiguator) SuggestCommands(partial string) []string {
	var suggestions []string
	for _, cmd := range commonExecutables {
		if strings.HasPrefix(cmd, partial) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
