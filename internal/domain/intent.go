package domain

// GeneratorFunc produces a canonical shell command for a parsed command.
// Intents may carry one to bypass the template table.
type GeneratorFunc func(ParsedCommand) string

// Intent is a named user goal with example phrasings and slot requirements.
// Registered once at startup and owned by the recognizer's registry.
type Intent struct {
	Name          string
	Description   string
	Examples      []string
	RequiredSlots []string
	OptionalSlots []string
	Category      CommandCategory
	Generator     GeneratorFunc
}

// IntentScore pairs an intent name with its similarity score.
type IntentScore struct {
	Name  string
	Score float64
}

// ActionVerbs is the fixed vocabulary that earns a similarity bonus when an
// input and an intent example share a verb.
var ActionVerbs = []string{
	"create", "delete", "move", "copy", "find",
	"show", "list", "git", "search", "open",
}

// Recognition thresholds.
const (
	// RecognizeFloor filters out intents whose best example score is at or
	// below this value.
	RecognizeFloor = 0.1
	// BestIntentThreshold is the minimum top score for a confident match.
	BestIntentThreshold = 0.3
	// LowConfidenceThreshold triggers disambiguation below it.
	LowConfidenceThreshold = 0.5
	// ActionVerbBonus is added per shared action verb, capped at 1.0 total.
	ActionVerbBonus = 0.2
)
