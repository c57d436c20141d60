package settings

import (
	"context"
	"testing"

	"ielts-coach/internal/kv"
	"ielts-coach/internal/provider"
)

func TestLoadDefaults(t *testing.T) {
	store := NewStore(kv.NewMemory(), "env-key")
	got := store.Load(context.Background())

	def := provider.Default()
	if got.Provider != def.ID {
		t.Errorf("Provider = %q, want %q", got.Provider, def.ID)
	}
	if got.Model != def.Models[0] {
		t.Errorf("Model = %q, want %q", got.Model, def.Models[0])
	}
	if got.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-supplied default", got.APIKey)
	}
	if got.CustomEndpoint != "" {
		t.Errorf("CustomEndpoint = %q, want empty", got.CustomEndpoint)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(kv.NewMemory(), "")
	ctx := context.Background()

	want := UserSettings{
		Provider: provider.OpenAI,
		APIKey:   "sk-test",
		Model:    "gpt-4o",
	}
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := store.Load(ctx); got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMergesPartialRecordOverDefaults(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	// A record written by an older build may miss fields.
	if err := mem.Set(ctx, StorageKey, `{"provider":"deepseek","model":"deepseek-chat"}`); err != nil {
		t.Fatal(err)
	}

	store := NewStore(mem, "fallback-key")
	got := store.Load(ctx)
	if got.Provider != provider.DeepSeek || got.Model != "deepseek-chat" {
		t.Errorf("stored fields not applied: %+v", got)
	}
	if got.APIKey != "fallback-key" {
		t.Errorf("APIKey = %q, want default to survive the merge", got.APIKey)
	}
}

func TestLoadIgnoresCorruptRecord(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	if err := mem.Set(ctx, StorageKey, `{not json`); err != nil {
		t.Fatal(err)
	}

	store := NewStore(mem, "")
	got := store.Load(ctx)
	if got.Provider != provider.Google {
		t.Errorf("corrupt record should yield defaults, got %+v", got)
	}
}

func TestSaveValidation(t *testing.T) {
	store := NewStore(kv.NewMemory(), "")
	ctx := context.Background()

	tests := []struct {
		name    string
		in      UserSettings
		wantErr bool
	}{
		{"valid", UserSettings{Provider: provider.Qwen, Model: "qwen-plus", APIKey: "k"}, false},
		{"valid with endpoint override", UserSettings{Provider: provider.OpenAI, Model: "gpt-4o", CustomEndpoint: "https://proxy.example.com/v1"}, false},
		{"unknown provider", UserSettings{Provider: "claude", Model: "m"}, true},
		{"missing model", UserSettings{Provider: provider.OpenAI}, true},
		{"bad endpoint", UserSettings{Provider: provider.OpenAI, Model: "gpt-4o", CustomEndpoint: "not a url"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Save(ctx, tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("Save(%+v) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
		})
	}
}
