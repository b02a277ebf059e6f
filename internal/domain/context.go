package domain

// MaxRecentCommands bounds the session command history ring.
const MaxRecentCommands = 100

// ConversationContext holds the mutable state of one shell session. It is
// mutated in place by the session manager and lives for the session lifetime.
type ConversationContext struct {
	CurrentDirectory string
	RecentFiles      []string
	RecentCommands   []string
	Variables        map[string]string
	Aliases          map[string]string
	LastError        string
	LastOutput       string
	GitBranch        string
	InGitRepo        bool
}
