package domain

// CompletionKind classifies the origin of a completion suggestion.
type CompletionKind string

const (
	CompletionPath    CompletionKind = "path"
	CompletionCommand CompletionKind = "command"
	CompletionFlag    CompletionKind = "flag"
	CompletionKeyword CompletionKind = "keyword"
	CompletionHistory CompletionKind = "history"
)

// Fixed scores per completion source.
const (
	CommandCompletionScore = 0.8
	HistoryCompletionScore = 0.7
	KeywordCompletionScore = 0.6
)

// CompletionItem is one ranked suggestion.
type CompletionItem struct {
	Text        string
	Display     string
	Description string
	Score       float64
	Kind        CompletionKind
}
