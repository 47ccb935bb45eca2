package llm

import "testing"

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CLASSDESK_LLM_PROVIDER", "CLASSDESK_OPENAI_API_KEY", "CLASSDESK_OPENAI_BASE_URL",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CLASSDESK_LLM_PROVIDER", "openai")
	t.Setenv("CLASSDESK_OPENAI_API_KEY", "sk-test")
	t.Setenv("CLASSDESK_OPENAI_BASE_URL", "http://localhost:1234/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.BaseURL != "http://localhost:1234/v1" {
		t.Fatalf("unexpected config: %+v", cfg.OpenAI)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("default model lost: %q", cfg.OpenAI.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDiscoverConfig_Priority(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openai" {
		t.Fatalf("expected openai, got %q", cfg.Provider)
	}
}

func TestResolveConfig(t *testing.T) {
	clearLLMEnv(t)
	if _, err := ResolveConfig(); err == nil {
		t.Fatal("expected error with nothing configured")
	}

	t.Setenv("CLASSDESK_LLM_PROVIDER", "mock")
	cfg, err := ResolveConfig()
	if err != nil || cfg.Provider != "mock" {
		t.Fatalf("got %q, %v", cfg.Provider, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  bool
	}{
		{"mock", false},
		{"anthropic", true},
		{"gemini", true},
		{"openrouter", true},
		{"llama", true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Provider = tt.provider
		if err := cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: err = %v, wantErr %v", tt.provider, err, tt.wantErr)
		}
	}
}
