package domain

// EntityType classifies typed literal values found in raw text.
type EntityType string

const (
	EntityPath       EntityType = "path"
	EntityFilename   EntityType = "filename"
	EntityExtension  EntityType = "extension"
	EntityPattern    EntityType = "pattern"
	EntityNumber     EntityType = "number"
	EntityURL        EntityType = "url"
	EntityEmail      EntityType = "email"
	EntityBranchName EntityType = "branch_name"
	EntityCommitHash EntityType = "commit_hash"
	EntityVariable   EntityType = "variable"
	EntityCustom     EntityType = "custom"
)

// Entity is a typed substring match. Produced per extraction call and not
// persisted.
type Entity struct {
	Value      string
	Normalized string
	Type       EntityType
	StartPos   int
	EndPos     int
	Confidence float64
}
