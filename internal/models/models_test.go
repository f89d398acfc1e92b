package models

import (
	"strings"
	"testing"
)

func TestCatalog_SortedByPriority(t *testing.T) {
	all := Catalog()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	if !strings.Contains(all[0].ID, "claude-3-7-sonnet") {
		t.Errorf("Expected Claude 3.7 Sonnet first, got %q", all[0].ID)
	}
	for i := 1; i < len(all); i++ {
		if modelPriority(all[i-1].ID) < modelPriority(all[i].ID) {
			t.Errorf("Catalog out of priority order at %d: %q before %q",
				i, all[i-1].ID, all[i].ID)
		}
	}
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0].ID = "mutated"

	if Catalog()[0].ID == "mutated" {
		t.Error("Catalog returned shared backing array")
	}
}

func TestCatalog_CoversAllFamilies(t *testing.T) {
	families := map[string]bool{}
	for _, m := range Catalog() {
		families[m.Family] = true
	}
	for _, want := range []string{"anthropic", "amazon", "meta"} {
		if !families[want] {
			t.Errorf("No %s models in catalog", want)
		}
	}
}

func TestResolve_ExactID(t *testing.T) {
	m, err := Resolve("us.anthropic.claude-3-7-sonnet-20250109-v1:0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if m.Name != "Claude 3.7 Sonnet" {
		t.Errorf("Got %q, want Claude 3.7 Sonnet", m.Name)
	}
}

func TestResolve_BedrockPrefix(t *testing.T) {
	m, err := Resolve(DefaultModelID)
	if err != nil {
		t.Fatalf("Resolve failed for default model: %v", err)
	}
	if m.ID != "us.anthropic.claude-3-7-sonnet-20250109-v1:0" {
		t.Errorf("Got %q", m.ID)
	}
}

func TestResolve_BaseIDMatchesInferenceProfile(t *testing.T) {
	m, err := Resolve("anthropic.claude-3-haiku-20240307-v1:0")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if m.ID != "us.anthropic.claude-3-haiku-20240307-v1:0" {
		t.Errorf("Got %q, want the us. inference profile", m.ID)
	}
}

func TestResolve_Unknown(t *testing.T) {
	if _, err := Resolve("gpt-4o"); err == nil {
		t.Error("Expected error for unknown model")
	}
	if _, err := Resolve(""); err == nil {
		t.Error("Expected error for empty model name")
	}
}

func TestIsBedrockModel(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"bedrock/anthropic.claude-3-haiku-20240307-v1:0", true},
		{"us.anthropic.claude-3-7-sonnet-20250109-v1:0", true},
		{"eu.anthropic.claude-3-haiku-20240307-v1:0", true},
		{"amazon.titan-text-express-v1", false},
		{"gpt-4o", false},
	}
	for _, tt := range tests {
		if got := IsBedrockModel(tt.name); got != tt.want {
			t.Errorf("IsBedrockModel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("bedrock/us.meta.llama3-1-8b-instruct-v1:0"); got != "us.meta.llama3-1-8b-instruct-v1:0" {
		t.Errorf("Normalize returned %q", got)
	}
	if got := Normalize("  amazon.titan-text-lite-v1  "); got != "amazon.titan-text-lite-v1" {
		t.Errorf("Normalize returned %q", got)
	}
}

func TestSuggest_Misspelling(t *testing.T) {
	got := Suggest("us.anthropic.claude-3-7-sonet-20250109-v1:0", 3)
	if len(got) == 0 {
		t.Fatal("Expected suggestions for near-miss spelling")
	}
	if got[0] != "us.anthropic.claude-3-7-sonnet-20250109-v1:0" {
		t.Errorf("Best suggestion %q, want the 3.7 Sonnet profile", got[0])
	}
}

func TestSuggest_DisplayName(t *testing.T) {
	got := Suggest("claude 3.5 haiku", 1)
	if len(got) != 1 || got[0] != "us.anthropic.claude-3-5-haiku-20241022-v1:0" {
		t.Errorf("Got %v, want the 3.5 Haiku profile", got)
	}
}

func TestSuggest_NothingClose(t *testing.T) {
	if got := Suggest("x", 3); len(got) != 0 {
		t.Errorf("Expected no suggestions, got %v", got)
	}
}

func TestSuggest_RespectsLimit(t *testing.T) {
	got := Suggest("claude", 2)
	if len(got) > 2 {
		t.Errorf("Suggest returned %d results, limit was 2", len(got))
	}
}
