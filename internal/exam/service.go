// Package exam holds the three feature services (writing evaluation, reading
// generation, speaking simulation) on top of the provider abstraction: every
// call reads settings fresh, branches on provider family and funnels the raw
// model output through the structured codec.
package exam

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"ielts-coach/internal/aijson"
	"ielts-coach/internal/compat"
	"ielts-coach/internal/gemini"
	"ielts-coach/internal/provider"
	"ielts-coach/internal/settings"
)

// Native-path temperatures: low for consistent grading, moderate for
// passage generation. The compat path uses its own fixed temperature.
const (
	writingTemperature = 0.3
	readingTemperature = 0.5
)

// DefaultReadingQuestions is used when the caller does not ask for a count.
const DefaultReadingQuestions = 3

// GeminiAPI is the native structured-generation dependency.
type GeminiAPI interface {
	GenerateJSON(ctx context.Context, req gemini.GenerateRequest) (string, error)
	NewChat(cfg gemini.ChatConfig) gemini.Session
}

// Service implements the feature calls. All fields are required.
type Service struct {
	Settings *settings.Store
	Compat   compat.Completer
	Gemini   GeminiAPI
	// FeedbackLanguage is the learner's native language, used for
	// evaluative commentary; corrected essays stay in English.
	FeedbackLanguage string
	Log              *slog.Logger
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// EvaluateEssay grades one essay against its question and returns structured
// feedback. Empty inputs are rejected before any network call.
func (s *Service) EvaluateEssay(ctx context.Context, question, essay string) (WritingFeedback, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(essay) == "" {
		return WritingFeedback{}, fmt.Errorf("%w: question and essay are required", ErrMissingInput)
	}

	st, desc, err := s.current(ctx)
	if err != nil {
		return WritingFeedback{}, err
	}

	systemPrompt := writingSystemPrompt(s.FeedbackLanguage)
	userPrompt := writingUserPrompt(question, essay)

	var raw string
	if desc.Native() {
		raw, err = s.Gemini.GenerateJSON(ctx, gemini.GenerateRequest{
			APIKey:      st.APIKey,
			Model:       st.Model,
			Prompt:      systemPrompt + "\n" + userPrompt,
			Schema:      writingSchema,
			Temperature: writingTemperature,
		})
	} else {
		raw, err = s.Compat.Complete(ctx, compatRequest(st, desc, []compat.Message{
			{Role: compat.RoleSystem, Content: systemPrompt},
			{Role: compat.RoleUser, Content: userPrompt},
		}, true))
	}
	if err != nil {
		return WritingFeedback{}, fmt.Errorf("evaluate essay: %w", err)
	}

	return decodeWritingFeedback(raw)
}

// GenerateReading produces one reading test about topic. questions <= 0
// selects the default count.
func (s *Service) GenerateReading(ctx context.Context, topic string, questions int) (ReadingPractice, error) {
	if strings.TrimSpace(topic) == "" {
		return ReadingPractice{}, fmt.Errorf("%w: topic is required", ErrMissingInput)
	}
	if questions <= 0 {
		questions = DefaultReadingQuestions
	}

	st, desc, err := s.current(ctx)
	if err != nil {
		return ReadingPractice{}, err
	}

	prompt := readingPrompt(topic, questions)

	var raw string
	if desc.Native() {
		raw, err = s.Gemini.GenerateJSON(ctx, gemini.GenerateRequest{
			APIKey:      st.APIKey,
			Model:       st.Model,
			Prompt:      prompt,
			Schema:      readingSchema,
			Temperature: readingTemperature,
		})
	} else {
		// Instructions go in the user turn; several models handle
		// creative tasks better that way.
		raw, err = s.Compat.Complete(ctx, compatRequest(st, desc, []compat.Message{
			{Role: compat.RoleUser, Content: prompt},
		}, true))
	}
	if err != nil {
		return ReadingPractice{}, fmt.Errorf("generate reading practice: %w", err)
	}

	return decodeReadingPractice(raw)
}

// current loads fresh settings and resolves the provider descriptor.
func (s *Service) current(ctx context.Context) (settings.UserSettings, provider.Descriptor, error) {
	st := s.Settings.Load(ctx)
	desc, ok := provider.Lookup(st.Provider)
	if !ok {
		return st, desc, fmt.Errorf("unknown provider %q", st.Provider)
	}
	if st.APIKey == "" {
		return st, desc, ErrNotConfigured
	}
	return st, desc, nil
}

// compatRequest assembles a chat-completions call: a non-empty endpoint
// override wins over the descriptor default, and the JSON-mode hint is sent
// only to providers that honor it.
func compatRequest(st settings.UserSettings, desc provider.Descriptor, msgs []compat.Message, wantJSON bool) compat.Request {
	endpoint := st.CustomEndpoint
	if endpoint == "" {
		endpoint = desc.Endpoint
	}
	return compat.Request{
		Endpoint: endpoint,
		APIKey:   st.APIKey,
		Model:    st.Model,
		Messages: msgs,
		JSONMode: wantJSON && desc.SupportsJSONMode,
	}
}

// Shadow shapes with pointer scores so a decode can tell "absent" from zero.
type criterionPayload struct {
	Score   *float64 `json:"score" validate:"required"`
	Comment string   `json:"comment"`
}

type writingPayload struct {
	BandScore         *float64          `json:"bandScore" validate:"required"`
	TaskResponse      *criterionPayload `json:"taskResponse" validate:"required"`
	CoherenceCohesion *criterionPayload `json:"coherenceCohesion" validate:"required"`
	LexicalResource   *criterionPayload `json:"lexicalResource" validate:"required"`
	GrammaticalRange  *criterionPayload `json:"grammaticalRange" validate:"required"`
	CorrectedVersion  string            `json:"correctedVersion"`
	GeneralAdvice     string            `json:"generalAdvice"`
}

func decodeWritingFeedback(raw string) (WritingFeedback, error) {
	payload, err := aijson.Decode[writingPayload](raw)
	if err != nil {
		return WritingFeedback{}, err
	}
	if err := validate.Struct(&payload); err != nil {
		return WritingFeedback{}, fmt.Errorf("%w: %v", aijson.ErrMalformed, err)
	}
	return WritingFeedback{
		BandScore:         *payload.BandScore,
		TaskResponse:      CriterionScore{Score: *payload.TaskResponse.Score, Comment: payload.TaskResponse.Comment},
		CoherenceCohesion: CriterionScore{Score: *payload.CoherenceCohesion.Score, Comment: payload.CoherenceCohesion.Comment},
		LexicalResource:   CriterionScore{Score: *payload.LexicalResource.Score, Comment: payload.LexicalResource.Comment},
		GrammaticalRange:  CriterionScore{Score: *payload.GrammaticalRange.Score, Comment: payload.GrammaticalRange.Comment},
		CorrectedVersion:  payload.CorrectedVersion,
		GeneralAdvice:     payload.GeneralAdvice,
	}, nil
}

func decodeReadingPractice(raw string) (ReadingPractice, error) {
	practice, err := aijson.Decode[ReadingPractice](raw)
	if err != nil {
		return ReadingPractice{}, err
	}
	if len(practice.Questions) == 0 {
		return ReadingPractice{}, fmt.Errorf("%w: no questions generated", aijson.ErrMalformed)
	}
	for _, q := range practice.Questions {
		if len(q.Options) != 4 {
			return ReadingPractice{}, fmt.Errorf("%w: question %d has %d options, want 4", aijson.ErrMalformed, q.ID, len(q.Options))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return ReadingPractice{}, fmt.Errorf("%w: question %d correctAnswer %d out of range", aijson.ErrMalformed, q.ID, q.CorrectAnswer)
		}
	}
	return practice, nil
}
