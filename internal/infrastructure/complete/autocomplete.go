// Package complete produces scored completion candidates for partial input.
package complete

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/doeshing/nlsh-go/internal/domain"
)

// HistorySource supplies previously entered lines for history completion.
type HistorySource interface {
	History(n int) []string
}

type commandEntry struct {
	name        string
	description string
}

var defaultCommands = []commandEntry{
	{"ls", "list directory contents"},
	{"cd", "change directory"},
	{"pwd", "print working directory"},
	{"cat", "print file contents"},
	{"rm", "remove files"},
	{"cp", "copy files"},
	{"mv", "move or rename files"},
	{"mkdir", "create a directory"},
	{"touch", "create an empty file"},
	{"find", "search for files"},
	{"grep", "search file contents"},
	{"git", "version control"},
	{"make", "run the build"},
	{"ps", "list processes"},
	{"kill", "terminate a process"},
	{"echo", "print text"},
	{"tar", "archive files"},
	{"curl", "transfer a URL"},
}

var defaultKeywords = []string{"all", "recursive", "force", "verbose", "quiet", "help"}

// Source is an extra completion provider merged in after the built-in ones.
type Source func(partial string) []domain.CompletionItem

// Completer merges path, command, history, and keyword candidates into a
// single ranked list.
type Completer struct {
	mu       sync.Mutex
	commands []commandEntry
	keywords []string
	sources  []Source
	history  HistorySource
}

// NewCompleter builds a completer over the built-in command and keyword
// tables. history may be nil.
func NewCompleter(history HistorySource) *Completer {
	return &Completer{
		commands: append([]commandEntry(nil), defaultCommands...),
		keywords: append([]string(nil), defaultKeywords...),
		history:  history,
	}
}

// AddKeyword registers an extra keyword candidate.
func (c *Completer) AddKeyword(keyword string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.keywords {
		if existing == keyword {
			return
		}
	}
	c.keywords = append(c.keywords, keyword)
}

// AddSource registers an extra completion provider.
func (c *Completer) AddSource(source Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, source)
}

// Complete returns candidates matching the partial input, best first. The
// sort is stable over the fixed source order path, command, history, keyword
// so equal scores keep that precedence.
func (c *Completer) Complete(partial string, limit int) []domain.CompletionItem {
	var items []domain.CompletionItem
	items = append(items, c.completePaths(partial)...)
	items = append(items, c.completeCommands(partial)...)
	items = append(items, c.completeHistory(partial)...)
	items = append(items, c.completeKeywords(partial)...)

	c.mu.Lock()
	sources := append([]Source(nil), c.sources...)
	c.mu.Unlock()
	for _, source := range sources {
		items = append(items, source(partial)...)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (c *Completer) completePaths(partial string) []domain.CompletionItem {
	dir, prefix := filepath.Split(partial)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}
	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}
	var items []domain.CompletionItem
	for _, entry := range entries {
		name := entry.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		text := dir + name
		description := "file"
		if entry.IsDir() {
			text += string(filepath.Separator)
			description = "directory"
		}
		items = append(items, domain.CompletionItem{
			Text:        text,
			Kind:        domain.CompletionPath,
			Description: description,
			Score:       domain.CommandCompletionScore,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Text < items[j].Text })
	return items
}

func (c *Completer) completeCommands(partial string) []domain.CompletionItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var items []domain.CompletionItem
	for _, entry := range c.commands {
		if !strings.HasPrefix(entry.name, partial) {
			continue
		}
		items = append(items, domain.CompletionItem{
			Text:        entry.name,
			Kind:        domain.CompletionCommand,
			Description: entry.description,
			Score:       domain.CommandCompletionScore,
		})
	}
	return items
}

func (c *Completer) completeHistory(partial string) []domain.CompletionItem {
	if c.history == nil {
		return nil
	}
	seen := make(map[string]bool)
	var items []domain.CompletionItem
	// History matches on substring, unlike the prefix-matched sources.
	for _, line := range c.history.History(0) {
		if !strings.Contains(line, partial) || line == partial || seen[line] {
			continue
		}
		seen[line] = true
		items = append(items, domain.CompletionItem{
			Text:  line,
			Kind:  domain.CompletionHistory,
			Score: domain.HistoryCompletionScore,
		})
	}
	return items
}

func (c *Completer) completeKeywords(partial string) []domain.CompletionItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var items []domain.CompletionItem
	for _, keyword := range c.keywords {
		if !strings.HasPrefix(keyword, partial) {
			continue
		}
		items = append(items, domain.CompletionItem{
			Text:  keyword,
			Kind:  domain.CompletionKeyword,
			Score: domain.KeywordCompletionScore,
		})
	}
	return items
}
