package llm

import "testing"

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{name: "openai", config: Config{Provider: "openai", APIKey: "sk-test"}, wantName: "openai"},
		{name: "anthropic", config: Config{Provider: "anthropic", APIKey: "sk-ant-test"}, wantName: "anthropic"},
		{name: "claude alias", config: Config{Provider: "claude", APIKey: "sk-ant-test"}, wantName: "anthropic"},
		{name: "ollama", config: Config{Provider: "ollama", Model: "llama3"}, wantName: "ollama"},
		{name: "case insensitive", config: Config{Provider: "OpenAI", APIKey: "sk-test"}, wantName: "openai"},
		{name: "empty disables", config: Config{}, wantNil: true},
		{name: "unknown", config: Config{Provider: "bard"}, wantErr: true},
		{name: "openai without key", config: Config{Provider: "openai"}, wantErr: true},
		{name: "anthropic without key", config: Config{Provider: "anthropic"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if p != nil {
					t.Errorf("provider = %v, want nil", p)
				}
				return
			}
			if p == nil || p.Name() != tt.wantName {
				t.Errorf("provider name = %v, want %s", p, tt.wantName)
			}
		})
	}
}
