package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/nlsh-go/internal/domain"
)

func testRecord(input, command string, success bool) domain.HistoryRecord {
	return domain.HistoryRecord{
		Timestamp: time.Now(),
		SessionID: "test-session",
		Input:     input,
		Command:   command,
		Executed:  true,
		Success:   success,
		RiskLevel: domain.RiskSafe,
	}
}

func TestFileStoreSaveAndRecords(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}

	if err := store.Save(testRecord("list files", "ls -l .", true)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(testRecord("show status", "git status", true)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d; want 2", len(records))
	}
	// Newest first.
	if records[0].Command != "git status" {
		t.Fatalf("first record = %+v; want git status", records[0])
	}
}

func TestFileStoreSearchAndLimit(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}
	for _, cmd := range []string{"ls -l .", "git status", "git push origin"} {
		if err := store.Save(testRecord("input", cmd, true)); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Records(0, "git")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("search git: len = %d; want 2", len(records))
	}

	records, err = store.Records(1, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].Command != "git push origin" {
		t.Fatalf("limit 1: %+v; want newest entry only", records)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "history.jsonl")}
	if err := store.Save(testRecord("a", "b", true)); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("records after clear = %+v", records)
	}
	// Clearing twice is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestSQLiteStoreFallsBackWithoutDB(t *testing.T) {
	dir := t.TempDir()
	store := &SQLiteStore{path: filepath.Join(dir, "history.db")}

	if err := store.Save(testRecord("list files", "ls -l .", true)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	records, err := store.Records(0, "")
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 1 || records[0].Command != "ls -l ." {
		t.Fatalf("records = %+v", records)
	}
}
