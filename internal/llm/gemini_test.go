package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestBuildGeminiSchema(t *testing.T) {
	s := buildGeminiSchema(map[string]any{
		"type":        "object",
		"description": "tutor reply",
		"properties": map[string]any{
			"reply": map[string]any{"type": "string"},
			"tags":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"tone":  map[string]any{"type": "string", "enum": []any{"warm", "brief"}},
		},
		"required": []any{"reply"},
	})

	if s.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", s.Type)
	}
	if s.Description != "tutor reply" {
		t.Fatalf("description lost: %q", s.Description)
	}
	if s.Properties["reply"].Type != genai.TypeString {
		t.Fatalf("reply: expected STRING, got %s", s.Properties["reply"].Type)
	}
	if s.Properties["tags"].Items == nil || s.Properties["tags"].Items.Type != genai.TypeString {
		t.Fatal("array items not converted")
	}
	if len(s.Properties["tone"].Enum) != 2 {
		t.Fatalf("enum lost: %v", s.Properties["tone"].Enum)
	}
	if len(s.Required) != 1 || s.Required[0] != "reply" {
		t.Fatalf("required lost: %v", s.Required)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name   string
		models map[string]string
		want   string
	}{
		{"gemini-flash", geminiModels, "gemini-2.0-flash"},
		{"claude-sonnet", anthropicModels, "claude-sonnet-4-20250514"},
		{"gpt-4.1", openaiModels, "gpt-4.1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.models); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
