// Package feedback records corrections from the user and derives direct
// input -> command overrides from repeated ones.
package feedback

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/ports"
)

// Learner keeps the append-only feedback log and the derived learned
// mappings. When a repository is attached, every record is persisted and the
// state is restored at construction.
type Learner struct {
	mu       sync.Mutex
	entries  []domain.FeedbackEntry
	mappings map[string]string
	repo     ports.FeedbackRepository
}

// NewLearner builds a learner, restoring prior state from repo when given.
func NewLearner(repo ports.FeedbackRepository) *Learner {
	l := &Learner{
		mappings: make(map[string]string),
		repo:     repo,
	}
	if repo != nil {
		if entries, err := repo.Entries(); err == nil {
			l.entries = entries
		}
		if mappings, err := repo.LoadMappings(); err == nil && len(mappings) > 0 {
			l.mappings = mappings
		}
	}
	return l
}

// Record appends a feedback entry. An incorrect generation with a supplied
// correction immediately becomes the active override for that exact input.
func (l *Learner) Record(input, generated string, correct bool, correction string) {
	entry := domain.FeedbackEntry{
		Input:            input,
		GeneratedCommand: generated,
		CorrectedCommand: generated,
		WasCorrect:       correct,
		Timestamp:        time.Now(),
	}
	if !correct {
		entry.CorrectedCommand = correction
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if !correct && correction != "" {
		l.mappings[input] = correction
	}
	l.mu.Unlock()

	if l.repo != nil {
		_ = l.repo.Append(entry)
	}
}

// LearnFromFeedback groups entries by input and promotes the highest
// weighted command per input. Ties break lexicographically on the command
// string so repeated runs are reproducible.
func (l *Learner) LearnFromFeedback() {
	l.mu.Lock()
	defer l.mu.Unlock()

	byInput := make(map[string][]domain.FeedbackEntry)
	for _, entry := range l.entries {
		byInput[entry.Input] = append(byInput[entry.Input], entry)
	}

	for input, entries := range byInput {
		counts := make(map[string]int)
		for _, entry := range entries {
			if entry.WasCorrect {
				counts[entry.GeneratedCommand] += domain.CorrectWeight
			} else if entry.CorrectedCommand != "" {
				counts[entry.CorrectedCommand] += domain.CorrectionWeight
			}
		}

		commands := make([]string, 0, len(counts))
		for cmd := range counts {
			commands = append(commands, cmd)
		}
		sort.Strings(commands)

		best := ""
		bestCount := 0
		for _, cmd := range commands {
			if counts[cmd] > bestCount {
				best = cmd
				bestCount = counts[cmd]
			}
		}
		if best != "" && bestCount >= domain.PromotionThreshold {
			l.mappings[input] = best
		}
	}

	if l.repo != nil {
		_ = l.repo.SaveMappings(copyMappings(l.mappings))
	}
}

// LearnedMapping returns the exact-match override for an input, if any.
func (l *Learner) LearnedMapping(input string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cmd, ok := l.mappings[input]
	return cmd, ok
}

// Accuracy is the fraction of recorded generations marked correct.
func (l *Learner) Accuracy() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return 0
	}
	correct := 0
	for _, entry := range l.entries {
		if entry.WasCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(l.entries))
}

// Count returns the number of recorded entries.
func (l *Learner) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Save writes the feedback log to path as line-delimited JSON.
func (l *Learner) Save(path string) error {
	l.mu.Lock()
	entries := append([]domain.FeedbackEntry(nil), l.entries...)
	l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Load replaces the in-memory log with the contents of path and re-derives
// the learned mappings, including immediate overrides.
func (l *Learner) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var entries []domain.FeedbackEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry domain.FeedbackEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	l.entries = entries
	l.mappings = make(map[string]string)
	for _, entry := range entries {
		if !entry.WasCorrect && entry.CorrectedCommand != "" {
			l.mappings[entry.Input] = entry.CorrectedCommand
		}
	}
	l.mu.Unlock()

	l.LearnFromFeedback()
	return nil
}

func copyMappings(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
