package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"ielts-coach/internal/kv"
	"ielts-coach/internal/provider"
)

// StorageKey is the single record under which settings persist.
const StorageKey = "ielts_ai_settings"

// UserSettings selects which provider, model and credential every AI call
// uses. CustomEndpoint, when set, overrides the provider's default endpoint
// on the OpenAI-compatible path.
type UserSettings struct {
	Provider       provider.ID `json:"provider" validate:"required"`
	APIKey         string      `json:"apiKey"`
	Model          string      `json:"model" validate:"required"`
	CustomEndpoint string      `json:"customEndpoint,omitempty" validate:"omitempty,url"`
}

// Store loads and saves user settings through a key-value backend. Load is
// called fresh at the start of every AI operation; nothing is cached here.
type Store struct {
	kv       kv.Store
	defaults UserSettings
	validate *validator.Validate
}

// NewStore builds a store whose defaults point at the primary provider's
// first catalog model. defaultAPIKey may be empty or environment-supplied.
func NewStore(kvs kv.Store, defaultAPIKey string) *Store {
	def := provider.Default()
	return &Store{
		kv: kvs,
		defaults: UserSettings{
			Provider: def.ID,
			APIKey:   defaultAPIKey,
			Model:    def.DefaultModel(),
		},
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load returns persisted settings merged over defaults: fields present in the
// stored record win, everything else keeps its default. Absent or unreadable
// data yields pure defaults; Load never fails.
func (s *Store) Load(ctx context.Context) UserSettings {
	raw, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return s.defaults
	}
	merged := s.defaults
	if err := json.Unmarshal([]byte(raw), &merged); err != nil {
		return s.defaults
	}
	return merged
}

// Save validates and overwrites the persisted record in a single write, so a
// concurrent Load sees either the old or the new value.
func (s *Store) Save(ctx context.Context, u UserSettings) error {
	if _, ok := provider.Lookup(u.Provider); !ok {
		return fmt.Errorf("unknown provider %q", u.Provider)
	}
	if err := s.validate.Struct(&u); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return s.kv.Set(ctx, StorageKey, string(raw))
}
