// Package entity pulls typed substrings (paths, numbers, URLs, ...) out of
// raw text using a table of precompiled patterns.
package entity

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/pkg/filesystem"
)

const defaultConfidence = 0.8

// Extractor holds a type -> patterns table built once at construction.
// It performs no locking; it is single-owner per session and AddPattern must
// not race with Extract.
type Extractor struct {
	order    []domain.EntityType
	patterns map[domain.EntityType][]*regexp.Regexp
	homeDir  string
}

// NewExtractor returns an extractor pre-populated with the built-in pattern
// table.
func NewExtractor() *Extractor {
	e := &Extractor{
		patterns: make(map[domain.EntityType][]*regexp.Regexp),
		homeDir:  filesystem.UserHomeDir(),
	}
	e.mustAdd(domain.EntityPath, `(?:^|[^\w])([/~][\w/.~-]+)`)
	e.mustAdd(domain.EntityPath, `(?:^|[^\w])(\.\.?(?:/[\w.-]+)*)`)
	e.mustAdd(domain.EntityFilename, `[\w.-]+\.[a-zA-Z0-9]+`)
	e.mustAdd(domain.EntityNumber, `\b\d+\b`)
	e.mustAdd(domain.EntityURL, `https?://[^\s]+`)
	e.mustAdd(domain.EntityEmail, `[\w.+-]+@[\w.-]+\.\w+`)
	e.mustAdd(domain.EntityCommitHash, `\b[0-9a-f]{7,40}\b`)
	e.mustAdd(domain.EntityPattern, `\*[\w.*?]+|\*\*[\w.*?/]+`)
	return e
}

// AddPattern appends a pattern for the given type. Invalid expressions are
// reported as an error rather than panicking.
func (e *Extractor) AddPattern(typ domain.EntityType, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	if _, ok := e.patterns[typ]; !ok {
		e.order = append(e.order, typ)
	}
	e.patterns[typ] = append(e.patterns[typ], re)
	return nil
}

func (e *Extractor) mustAdd(typ domain.EntityType, pattern string) {
	if err := e.AddPattern(typ, pattern); err != nil {
		panic(err)
	}
}

// Extract runs every pattern over the text and returns one entity per match,
// sorted by start offset. PATH values have a leading ~ expanded into the
// caller's home directory in the Normalized field.
func (e *Extractor) Extract(text string) []domain.Entity {
	var entities []domain.Entity
	for _, typ := range e.order {
		for _, re := range e.patterns[typ] {
			for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
				start, end := loc[0], loc[1]
				// Prefer the first capture group when the pattern uses one
				// to skip a context prefix.
				if len(loc) >= 4 && loc[2] >= 0 {
					start, end = loc[2], loc[3]
				}
				value := text[start:end]
				if value == "" {
					continue
				}
				ent := domain.Entity{
					Value:      value,
					Normalized: value,
					Type:       typ,
					StartPos:   start,
					EndPos:     end,
					Confidence: defaultConfidence,
				}
				if typ == domain.EntityPath {
					ent.Normalized = e.ExpandPath(value)
				}
				entities = append(entities, ent)
			}
		}
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].StartPos < entities[j].StartPos
	})
	return entities
}

// ExtractType filters extraction results down to one entity type.
func (e *Extractor) ExtractType(text string, typ domain.EntityType) []domain.Entity {
	var filtered []domain.Entity
	for _, ent := range e.Extract(text) {
		if ent.Type == typ {
			filtered = append(filtered, ent)
		}
	}
	return filtered
}

// ExtractPaths returns only PATH entities.
func (e *Extractor) ExtractPaths(text string) []domain.Entity {
	return e.ExtractType(text, domain.EntityPath)
}

// ExtractNumbers returns only NUMBER entities.
func (e *Extractor) ExtractNumbers(text string) []domain.Entity {
	return e.ExtractType(text, domain.EntityNumber)
}

// ExtractPatterns returns only glob PATTERN entities.
func (e *Extractor) ExtractPatterns(text string) []domain.Entity {
	return e.ExtractType(text, domain.EntityPattern)
}

// ExtractURLs returns only URL entities.
func (e *Extractor) ExtractURLs(text string) []domain.Entity {
	return e.ExtractType(text, domain.EntityURL)
}

// ExpandPath expands a leading ~ to the home directory.
func (e *Extractor) ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if path == "~" {
		return e.homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(e.homeDir, path[2:])
	}
	return path
}
