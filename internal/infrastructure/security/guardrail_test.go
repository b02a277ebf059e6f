package security

import (
	"testing"

	"github.com/doeshing/nlsh-go/internal/domain"
)

func TestGuardrailFlagsHighRiskPatterns(t *testing.T) {
	guardrail, err := NewGuardrail("")
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}

	dangerous := []string{
		"rm -rf /",
		"rm -rf *",
		"echo x > /dev/sda",
		"mkfs.ext4 /dev/sdb1",
		"dd if=/dev/zero of=/dev/sda",
		":(){ :|:& };:",
		"chmod -R 777 /",
	}
	for _, cmd := range dangerous {
		if !guardrail.Dangerous(cmd) {
			t.Fatalf("expected %q to be dangerous", cmd)
		}
	}
}

func TestGuardrailAllowsSafeCommands(t *testing.T) {
	guardrail, err := NewGuardrail("")
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}

	for _, cmd := range []string{"ls -la .", "git status", "touch test.txt"} {
		if guardrail.Dangerous(cmd) {
			t.Fatalf("expected %q to be safe", cmd)
		}
	}
}

func TestGuardrailBlocksRootDelete(t *testing.T) {
	guardrail, err := NewGuardrail("")
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}

	result, err := guardrail.Evaluate("rm -rf /")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if result.Action != domain.ActionBlock || result.Level != domain.RiskCritical {
		t.Fatalf("expected critical block, got %+v", result)
	}
	if len(result.Reasons) == 0 || len(result.MatchedRules) == 0 {
		t.Fatalf("expected reasons and matched rules, got %+v", result)
	}
}
