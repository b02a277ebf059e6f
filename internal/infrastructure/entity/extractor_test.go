package entity

import (
	"path/filepath"
	"testing"

	"github.com/doeshing/nlsh-go/internal/domain"
)

func TestExtractFindsTypedEntitiesSortedByOffset(t *testing.T) {
	e := NewExtractor()

	entities := e.Extract("copy /tmp/data.csv to https://example.com/up then email bob@example.com")
	if len(entities) == 0 {
		t.Fatal("expected entities")
	}
	for i := 1; i < len(entities); i++ {
		if entities[i-1].StartPos > entities[i].StartPos {
			t.Fatalf("entities not sorted by offset: %+v", entities)
		}
	}

	if paths := e.ExtractPaths("copy /tmp/data.csv somewhere"); len(paths) == 0 || paths[0].Value != "/tmp/data.csv" {
		t.Fatalf("expected /tmp/data.csv path, got %+v", paths)
	}
	if urls := e.ExtractURLs("open https://example.com/up now"); len(urls) != 1 {
		t.Fatalf("expected one url, got %+v", urls)
	}
}

func TestExtractExpandsTildeInPathNormalization(t *testing.T) {
	e := NewExtractor()
	e.homeDir = "/home/tester"

	paths := e.ExtractPaths("read ~/notes/todo.txt please")
	if len(paths) == 0 {
		t.Fatal("expected a path entity")
	}
	want := filepath.Join("/home/tester", "notes/todo.txt")
	if paths[0].Normalized != want {
		t.Fatalf("expected normalized %q, got %q", want, paths[0].Normalized)
	}
	if paths[0].Value != "~/notes/todo.txt" {
		t.Fatalf("raw value must stay untouched, got %q", paths[0].Value)
	}
}

func TestExtractNumbersAndCommitHashes(t *testing.T) {
	e := NewExtractor()

	if nums := e.ExtractNumbers("kill process 1234 now"); len(nums) == 0 || nums[0].Value != "1234" {
		t.Fatalf("expected 1234, got %+v", nums)
	}
	hashes := e.ExtractType("checkout deadbeefcafe", domain.EntityCommitHash)
	if len(hashes) == 0 || hashes[0].Value != "deadbeefcafe" {
		t.Fatalf("expected commit hash, got %+v", hashes)
	}
}

func TestAddPatternExtendsTable(t *testing.T) {
	e := NewExtractor()
	if err := e.AddPattern(domain.EntityCustom, `#\d+`); err != nil {
		t.Fatalf("AddPattern error: %v", err)
	}
	got := e.ExtractType("fix issue #42", domain.EntityCustom)
	if len(got) != 1 || got[0].Value != "#42" {
		t.Fatalf("expected #42, got %+v", got)
	}

	if err := e.AddPattern(domain.EntityCustom, `(`); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}
