// Package intent owns the registry of named intents and scores raw input
// against their example phrasings.
package intent

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/doeshing/nlsh-go/internal/domain"
)

// Recognizer matches free-form input to registered intents. The registry is
// guarded by an exclusive lock; registration overwrites on name collision.
type Recognizer struct {
	mu      sync.Mutex
	intents map[string]domain.Intent
}

// NewRecognizer builds a recognizer pre-loaded with the built-in intents.
func NewRecognizer() *Recognizer {
	r := &Recognizer{intents: make(map[string]domain.Intent)}
	r.registerFileIntents()
	r.registerNavigationIntents()
	r.registerSearchIntents()
	r.registerGitIntents()
	r.registerSystemIntents()
	return r
}

// Register adds or replaces an intent keyed by name.
func (r *Recognizer) Register(intent domain.Intent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents[intent.Name] = intent
}

// Unregister removes an intent. Unknown names are a no-op.
func (r *Recognizer) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.intents, name)
}

// List returns all registered intents sorted by name.
func (r *Recognizer) List() []domain.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Intent, 0, len(r.intents))
	for _, intent := range r.intents {
		result = append(result, intent)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Get looks up one intent by name.
func (r *Recognizer) Get(name string) (domain.Intent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	intent, ok := r.intents[name]
	return intent, ok
}

// Recognize scores the input against every intent's examples and returns
// matches above the floor, sorted by descending score. Ties are broken by
// intent name so results are reproducible.
func (r *Recognizer) Recognize(input string) []domain.IntentScore {
	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := normalize(input)
	var scores []domain.IntentScore
	for name, intent := range r.intents {
		best := 0.0
		for _, example := range intent.Examples {
			if s := similarity(normalized, normalize(example)); s > best {
				best = s
			}
		}
		if best > domain.RecognizeFloor {
			scores = append(scores, domain.IntentScore{Name: name, Score: best})
		}
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score == scores[j].Score {
			return scores[i].Name < scores[j].Name
		}
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// BestIntent returns the top-scoring intent only when its score clears the
// confidence threshold. Absence of a match is not an error.
func (r *Recognizer) BestIntent(input string) (domain.Intent, float64, bool) {
	scores := r.Recognize(input)
	if len(scores) == 0 || scores[0].Score < domain.BestIntentThreshold {
		return domain.Intent{}, 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	intent, ok := r.intents[scores[0].Name]
	if !ok {
		return domain.Intent{}, 0, false
	}
	return intent, scores[0].Score, true
}

// ExtractSlots tags path-looking tokens and appends a zero-confidence
// placeholder for every required slot not already satisfied. The placeholder
// is the missing-slot signal consumed by the disambiguator.
func (r *Recognizer) ExtractSlots(input string, intent domain.Intent) []domain.ParsedSlot {
	var slots []domain.ParsedSlot
	for _, token := range tokenize(input) {
		if strings.ContainsAny(token, "/.") {
			slots = append(slots, domain.ParsedSlot{
				Name:       "path",
				Value:      token,
				Type:       "path",
				Confidence: 0.8,
			})
		}
	}

	for _, req := range intent.RequiredSlots {
		found := false
		for _, slot := range slots {
			if slot.Name == req {
				found = true
				break
			}
		}
		if !found {
			slots = append(slots, domain.ParsedSlot{Name: req, Required: true})
		}
	}
	return slots
}

// similarity is the Jaccard index of the two token sets plus a bonus per
// shared action verb, capped at 1.0.
func similarity(input, example string) float64 {
	set1 := tokenSet(tokenize(input))
	set2 := tokenSet(tokenize(example))
	if len(set1) == 0 || len(set2) == 0 {
		return 0
	}

	inter := 0
	for tok := range set1 {
		if set2[tok] {
			inter++
		}
	}
	union := len(set1) + len(set2) - inter
	jaccard := float64(inter) / float64(union)

	bonus := 0.0
	for _, verb := range domain.ActionVerbs {
		if set1[verb] && set2[verb] {
			bonus += domain.ActionVerbBonus
		}
	}

	if score := jaccard + bonus; score < 1.0 {
		return score
	}
	return 1.0
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}

// tokenize splits on whitespace and strips punctuation except '.' and '/'.
func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(text) {
		var b strings.Builder
		for _, r := range field {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '/' {
				continue
			}
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
		}
	}
	return tokens
}

func normalize(text string) string {
	return strings.ToLower(text)
}
