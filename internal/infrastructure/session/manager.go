// Package session holds the mutable conversation state for one shell
// session: working directory, recent files and commands, variables, aliases.
package session

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/nlsh-go/internal/domain"
)

// Manager guards a ConversationContext with an exclusive lock per mutating
// call. One manager per session.
type Manager struct {
	mu  sync.Mutex
	ctx domain.ConversationContext
}

// NewManager builds a manager and refreshes it from the environment.
func NewManager() *Manager {
	m := &Manager{
		ctx: domain.ConversationContext{
			Variables: make(map[string]string),
			Aliases:   make(map[string]string),
		},
	}
	m.Refresh()
	return m
}

// Snapshot returns a copy of the current context.
func (m *Manager) Snapshot() domain.ConversationContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctx := m.ctx
	ctx.RecentFiles = append([]string(nil), m.ctx.RecentFiles...)
	ctx.RecentCommands = append([]string(nil), m.ctx.RecentCommands...)
	ctx.Variables = copyMap(m.ctx.Variables)
	ctx.Aliases = copyMap(m.ctx.Aliases)
	return ctx
}

// Refresh reads the working directory and the version-control marker to
// populate the git fields.
func (m *Manager) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if wd, err := os.Getwd(); err == nil {
		m.ctx.CurrentDirectory = wd
	}

	m.ctx.InGitRepo = false
	m.ctx.GitBranch = ""
	head, err := os.Open(filepath.Join(m.ctx.CurrentDirectory, ".git", "HEAD"))
	if err != nil {
		return
	}
	defer head.Close()
	m.ctx.InGitRepo = true
	scanner := bufio.NewScanner(head)
	if scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "ref: refs/heads/") {
			m.ctx.GitBranch = strings.TrimPrefix(line, "ref: refs/heads/")
		}
	}
}

// UpdateFromResult stores the last output and error text.
func (m *Manager) UpdateFromResult(result domain.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.LastOutput = result.Output
	m.ctx.LastError = result.Error
}

// NoteFile remembers a file the conversation referred to.
func (m *Manager) NoteFile(path string) {
	if path == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.RecentFiles = append(m.ctx.RecentFiles, path)
}

// ResolvePronoun maps "it"/"this"/"that" to the most recently referenced
// file, "them"/"those" to all recent files joined, "here" to the current
// directory. Anything else is echoed unchanged.
func (m *Manager) ResolvePronoun(word string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch strings.ToLower(word) {
	case "it", "that", "this":
		if n := len(m.ctx.RecentFiles); n > 0 {
			return m.ctx.RecentFiles[n-1]
		}
	case "them", "those":
		if len(m.ctx.RecentFiles) > 0 {
			return strings.Join(m.ctx.RecentFiles, " ")
		}
	case "here":
		return m.ctx.CurrentDirectory
	}
	return word
}

// ResolveReference rewrites pronoun occurrences until a fixed point. This is
// a literal text rewrite, not a linguistic parse.
func (m *Manager) ResolveReference(text string) string {
	replacements := [][2]string{
		{" it ", " " + m.ResolvePronoun("it") + " "},
		{" that ", " " + m.ResolvePronoun("that") + " "},
		{" this ", " " + m.ResolvePronoun("this") + " "},
		{" here", " " + m.ResolvePronoun("here")},
	}

	result := text
	for _, rep := range replacements {
		if rep[0] == rep[1] || strings.Contains(rep[1], rep[0]) {
			continue
		}
		for strings.Contains(result, rep[0]) {
			result = strings.ReplaceAll(result, rep[0], rep[1])
		}
	}
	return result
}

// AddCommand appends to the bounded history ring.
func (m *Manager) AddCommand(cmd string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.RecentCommands = append(m.ctx.RecentCommands, cmd)
	if len(m.ctx.RecentCommands) > domain.MaxRecentCommands {
		m.ctx.RecentCommands = m.ctx.RecentCommands[len(m.ctx.RecentCommands)-domain.MaxRecentCommands:]
	}
}

// History returns the most recent n commands, oldest first. A non-positive
// n returns the whole ring.
func (m *Manager) History(n int) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := 0
	if n > 0 && len(m.ctx.RecentCommands) > n {
		start = len(m.ctx.RecentCommands) - n
	}
	return append([]string(nil), m.ctx.RecentCommands[start:]...)
}

// FindSimilar scans history backwards for the most recent command containing
// the partial as a substring.
func (m *Manager) FindSimilar(partial string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.ctx.RecentCommands) - 1; i >= 0; i-- {
		if strings.Contains(m.ctx.RecentCommands[i], partial) {
			return m.ctx.RecentCommands[i], true
		}
	}
	return "", false
}

// SetVariable stores a session variable.
func (m *Manager) SetVariable(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.Variables[name] = value
}

// Variable looks up a session variable.
func (m *Manager) Variable(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.ctx.Variables[name]
	return value, ok
}

// ExpandVariables replaces every $name occurrence with the stored value.
// Unknown names are left untouched.
func (m *Manager) ExpandVariables(text string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := text
	for name, value := range m.ctx.Variables {
		result = strings.ReplaceAll(result, "$"+name, value)
	}
	return result
}

// SetAlias stores a command alias.
func (m *Manager) SetAlias(name, command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctx.Aliases[name] = command
}

// Alias looks up a command alias.
func (m *Manager) Alias(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	command, ok := m.ctx.Aliases[name]
	return command, ok
}

func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
