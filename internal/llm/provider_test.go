package llm

import "testing"

func TestConfigValidate(t *testing.T) {
	valid := Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini", APIKey: "k"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"unknown provider", Config{Provider: "anthropic", Model: "m", APIKey: "k"}},
		{"empty provider", Config{Model: "m", APIKey: "k"}},
		{"missing model", Config{Provider: ProviderGroq, APIKey: "k"}},
		{"missing key", Config{Provider: ProviderGemini, Model: "gemini-1.5-flash"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestNewDispatchesPerProvider(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderGroq, ProviderGemini} {
		p, err := New(Config{Provider: provider, Model: "some-model", APIKey: "k"})
		if err != nil {
			t.Fatalf("New(%s) failed: %v", provider, err)
		}
		if p == nil {
			t.Fatalf("New(%s) returned nil provider", provider)
		}
	}

	if _, err := New(Config{Provider: "mystery", Model: "m", APIKey: "k"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestGroqSharesChatCompletionClient(t *testing.T) {
	p, err := New(Config{Provider: ProviderGroq, Model: "llama-3.1-70b-versatile", APIKey: "k"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cc, ok := p.(*chatCompletionProvider)
	if !ok {
		t.Fatalf("expected chat-completion provider, got %T", p)
	}
	if cc.baseURL != groqBaseURL {
		t.Fatalf("expected groq base URL, got %q", cc.baseURL)
	}
}
