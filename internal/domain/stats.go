package domain

// SessionStats is a read-only snapshot exposed to any host UI.
type SessionStats struct {
	TotalCommands      int
	SuccessfulCommands int
	FailedCommands     int
	Disambiguations    int
	Corrections        int
	AvgConfidence      float64
}
