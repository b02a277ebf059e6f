package intent

import (
	"testing"

	"github.com/doeshing/nlsh-go/internal/domain"
)

func TestRecognizeReturnsSortedScoresAboveFloor(t *testing.T) {
	r := NewRecognizer()

	scores := r.Recognize("create a file called test.txt")
	if len(scores) == 0 {
		t.Fatal("expected at least one score")
	}
	for i, s := range scores {
		if s.Score <= domain.RecognizeFloor {
			t.Fatalf("score %f at %d is not above floor", s.Score, i)
		}
		if i > 0 && scores[i-1].Score < s.Score {
			t.Fatalf("scores not sorted descending at %d: %f < %f", i, scores[i-1].Score, s.Score)
		}
	}
	if scores[0].Name != "create_file" {
		t.Fatalf("expected create_file on top, got %s", scores[0].Name)
	}
}

func TestBestIntentRejectsWeakMatches(t *testing.T) {
	r := NewRecognizer()

	if _, _, ok := r.BestIntent("xyzzy blorp frobnicate"); ok {
		t.Fatal("expected no match for gibberish")
	}

	intent, score, ok := r.BestIntent("delete the file test.txt")
	if !ok {
		t.Fatal("expected a match")
	}
	if intent.Name != "delete_file" {
		t.Fatalf("expected delete_file, got %s", intent.Name)
	}
	if score < domain.BestIntentThreshold {
		t.Fatalf("score %f below threshold", score)
	}
}

func TestActionVerbBonusBoostsSharedVerbs(t *testing.T) {
	with := similarity("create something", "create a file")
	without := similarity("make something", "create a file")
	if with <= without {
		t.Fatalf("expected verb bonus to raise score: with=%f without=%f", with, without)
	}
}

func TestSimilarityCappedAtOne(t *testing.T) {
	if s := similarity("create delete move copy", "create delete move copy"); s != 1.0 {
		t.Fatalf("expected cap at 1.0, got %f", s)
	}
}

func TestExtractSlotsTagsPathsAndMissingRequired(t *testing.T) {
	r := NewRecognizer()
	intent, _ := r.Get("create_file")

	slots := r.ExtractSlots("create a file called test.txt", intent)

	var path, filename *domain.ParsedSlot
	for i := range slots {
		switch slots[i].Name {
		case "path":
			path = &slots[i]
		case "filename":
			filename = &slots[i]
		}
	}
	if path == nil || path.Value != "test.txt" || path.Confidence != 0.8 {
		t.Fatalf("expected path slot for test.txt, got %+v", slots)
	}
	if filename == nil || !filename.Required || filename.Value != "" || filename.Confidence != 0 {
		t.Fatalf("expected zero-confidence required filename placeholder, got %+v", slots)
	}
}

func TestRegisterOverwritesAndUnregisterRemoves(t *testing.T) {
	r := NewRecognizer()

	r.Register(domain.Intent{Name: "custom", Examples: []string{"do the custom thing"}})
	r.Register(domain.Intent{Name: "custom", Description: "second", Examples: []string{"do the custom thing"}})

	got, ok := r.Get("custom")
	if !ok || got.Description != "second" {
		t.Fatalf("expected overwrite on collision, got %+v ok=%v", got, ok)
	}

	r.Unregister("custom")
	if _, ok := r.Get("custom"); ok {
		t.Fatal("expected custom intent removed")
	}
}

func TestTokenizeStripsPunctuationExceptDotAndSlash(t *testing.T) {
	tokens := tokenize("what's in ./src, really?")
	want := map[string]bool{"whats": true, "in": true, "./src": true, "really": true}
	if len(tokens) != len(want) {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	for _, tok := range tokens {
		if !want[tok] {
			t.Fatalf("unexpected token %q in %v", tok, tokens)
		}
	}
}
