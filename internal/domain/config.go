package domain

// Config mirrors ~/.nlsh/config.yaml.
type Config struct {
	ConfigFormatVersion string              `yaml:"config_format_version"`
	Recognition         RecognitionSettings `yaml:"recognition"`
	Security            SecuritySettings    `yaml:"security"`
	Execution           ExecutionSettings   `yaml:"execution"`
	Learning            LearningSettings    `yaml:"learning"`
	History             HistorySettings     `yaml:"history"`
}

// RecognitionSettings tune the intent pipeline.
type RecognitionSettings struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	Verbose             bool    `yaml:"verbose"`
}

// SecuritySettings defines guardrail behavior.
type SecuritySettings struct {
	Enabled                 bool   `yaml:"enabled"`
	RulesFile               string `yaml:"rules_file"`
	ConfirmDangerousCommand bool   `yaml:"confirm_dangerous_command"`
}

// ExecutionSettings controls how commands run.
type ExecutionSettings struct {
	Shell          string `yaml:"shell"`
	TimeoutSeconds int    `yaml:"timeout"`
	DryRun         bool   `yaml:"dry_run"`
}

// LearningSettings control the feedback loop.
type LearningSettings struct {
	Enabled      bool   `yaml:"enabled"`
	FeedbackFile string `yaml:"feedback_file"`
}

// HistorySettings control session history persistence.
type HistorySettings struct {
	File       string `yaml:"file"`
	MaxEntries int    `yaml:"max_entries"`
}
