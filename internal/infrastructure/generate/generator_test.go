package generate

import (
	"testing"

	"github.com/doeshing/nlsh-go/internal/domain"
)

func TestFileCommandsPreferPathOverFilename(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		Category: domain.CategoryFileSystem,
		Action:   "create_file",
		Slots: []domain.ParsedSlot{
			{Name: "path", Value: "test.txt", Type: "path"},
			{Name: "filename", Value: "other.txt"},
		},
	}
	if got := g.Generate(cmd); got != "touch test.txt" {
		t.Fatalf("expected 'touch test.txt', got %q", got)
	}

	cmd.Action = "delete_file"
	if got := g.Generate(cmd); got != "rm test.txt" {
		t.Fatalf("expected 'rm test.txt', got %q", got)
	}
}

func TestNavigationDefaults(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		OriginalInput: "list files in current folder",
		Category:      domain.CategoryNavigation,
		Action:        "list_directory",
	}
	if got := g.Generate(cmd); got != "ls -l ." {
		t.Fatalf("expected 'ls -l .', got %q", got)
	}

	cmd = domain.ParsedCommand{
		OriginalInput: "show me all files",
		Category:      domain.CategoryNavigation,
		Action:        "list_directory",
	}
	if got := g.Generate(cmd); got != "ls -la ." {
		t.Fatalf("expected 'ls -la .', got %q", got)
	}

	cmd = domain.ParsedCommand{
		OriginalInput: "go up one level",
		Category:      domain.CategoryNavigation,
		Action:        "change_directory",
	}
	if got := g.Generate(cmd); got != "cd .." {
		t.Fatalf("expected 'cd ..', got %q", got)
	}
}

func TestGitCommandsMineOriginalInput(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		OriginalInput: "commit changes with message fix bug",
		Category:      domain.CategoryGit,
		Action:        "git_commit",
	}
	if got := g.Generate(cmd); got != "git commit -m 'fix bug'" {
		t.Fatalf("expected commit with mined message, got %q", got)
	}

	cmd = domain.ParsedCommand{
		OriginalInput: "push to origin",
		Category:      domain.CategoryGit,
		Action:        "git_push",
	}
	if got := g.Generate(cmd); got != "git push origin" {
		t.Fatalf("expected 'git push origin', got %q", got)
	}

	cmd = domain.ParsedCommand{
		OriginalInput: "switch to main branch",
		Category:      domain.CategoryGit,
		Action:        "git_checkout",
	}
	if got := g.Generate(cmd); got != "git checkout main" {
		t.Fatalf("expected 'git checkout main', got %q", got)
	}
}

func TestFindFilesExtensionMining(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		OriginalInput: "find all .py files",
		Category:      domain.CategorySearch,
		Action:        "find_files",
	}
	if got := g.Generate(cmd); got != "find . -name '*.py'" {
		t.Fatalf("expected extension glob, got %q", got)
	}

	cmd.OriginalInput = "find some files"
	if got := g.Generate(cmd); got != "find . -name '*'" {
		t.Fatalf("expected wildcard fallback, got %q", got)
	}
}

func TestSearchContentRequiresPattern(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		OriginalInput: "search for TODO in all files",
		Category:      domain.CategorySearch,
		Action:        "search_content",
	}
	if got := g.Generate(cmd); got != "grep -rn 'TODO' ." {
		t.Fatalf("expected grep for TODO, got %q", got)
	}

	cmd = domain.ParsedCommand{
		OriginalInput: "grep everywhere",
		Category:      domain.CategorySearch,
		Action:        "search_content",
	}
	if got := g.Generate(cmd); got != "" {
		t.Fatalf("expected empty generation without pattern, got %q", got)
	}
}

func TestProcessCommandsDistinguishPidFromName(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		Category: domain.CategoryProcess,
		Action:   "kill_process",
		Slots:    []domain.ParsedSlot{{Name: "process", Value: "1234"}},
	}
	if got := g.Generate(cmd); got != "kill 1234" {
		t.Fatalf("expected 'kill 1234', got %q", got)
	}

	cmd.Slots[0].Value = "node"
	if got := g.Generate(cmd); got != "pkill node" {
		t.Fatalf("expected 'pkill node', got %q", got)
	}
}

func TestSystemDatetimeVariants(t *testing.T) {
	g := NewGenerator()

	cmd := domain.ParsedCommand{
		OriginalInput: "what time is it",
		Category:      domain.CategorySystem,
		Action:        "show_datetime",
	}
	if got := g.Generate(cmd); got != "date +%H:%M:%S" {
		t.Fatalf("expected time format, got %q", got)
	}

	cmd.OriginalInput = "what's today's date"
	if got := g.Generate(cmd); got != "date +%Y-%m-%d" {
		t.Fatalf("expected date format, got %q", got)
	}
}

func TestExpandTemplateSubstitutesPlaceholders(t *testing.T) {
	g := NewGenerator()

	g.AddTemplate("archive", "tar -czf {archive} {path}")
	tmpl, ok := g.Template("archive")
	if !ok {
		t.Fatal("expected template registered")
	}
	got := g.ExpandTemplate(tmpl, map[string]string{"archive": "out.tgz", "path": "src"})
	if got != "tar -czf out.tgz src" {
		t.Fatalf("unexpected expansion %q", got)
	}

	got = g.ExpandTemplate("echo {missing}", nil)
	if got != "echo {missing}" {
		t.Fatalf("unknown placeholders must stay, got %q", got)
	}
}

func TestSanitizeStripsUnsafeCharacters(t *testing.T) {
	g := NewGenerator()

	if got := g.Sanitize("file.txt; rm -rf /"); got != "file.txt rm -rf /" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
	if got := g.Sanitize("$(evil) `cmd` | x && y"); got != "evil cmd  x  y" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
}

func TestUnknownCategoryGeneratesNothing(t *testing.T) {
	g := NewGenerator()
	if got := g.Generate(domain.ParsedCommand{Category: domain.CategoryUnknown}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
