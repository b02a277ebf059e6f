package feedback

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/pkg/filesystem"
	"github.com/doeshing/nlsh-go/internal/ports"
)

// FileStore appends feedback entries to a jsonl file and keeps learned
// mappings in a sibling json file.
type FileStore struct {
	path         string
	mappingsPath string
	mu           sync.Mutex
}

// NewFileStore creates a feedback store under ~/.nlsh/feedback/.
func NewFileStore() *FileStore {
	dir := filepath.Join(filesystem.StateDir(), "feedback")
	return &FileStore{
		path:         filepath.Join(dir, "feedback.jsonl"),
		mappingsPath: filepath.Join(dir, "mappings.json"),
	}
}

// Append implements ports.FeedbackRepository.
func (f *FileStore) Append(entry domain.FeedbackEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Entries loads all feedback entries (best-effort).
func (f *FileStore) Entries() ([]domain.FeedbackEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var entries []domain.FeedbackEntry
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		var entry domain.FeedbackEntry
		if err := json.Unmarshal(line, &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// SaveMappings writes the learned mappings as a single json document.
func (f *FileStore) SaveMappings(mappings map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.mappingsPath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.mappingsPath, data, 0o644)
}

// LoadMappings reads the learned mappings document.
func (f *FileStore) LoadMappings() (map[string]string, error) {
	data, err := os.ReadFile(f.mappingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	mappings := make(map[string]string)
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

var _ ports.FeedbackRepository = (*FileStore)(nil)
