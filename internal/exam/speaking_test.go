package exam

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"ielts-coach/internal/compat"
	"ielts-coach/internal/gemini"
	"ielts-coach/internal/provider"
	"ielts-coach/internal/settings"
)

func TestNewSpeakingSessionPicksVariant(t *testing.T) {
	t.Run("google uses native chat", func(t *testing.T) {
		svc, _, api := newTestService(t, &settings.UserSettings{
			Provider: provider.Google, Model: "gemini-2.5-flash", APIKey: "g-key",
		})
		chat := &gemini.MockSession{}
		api.On("NewChat", mock.MatchedBy(func(cfg gemini.ChatConfig) bool {
			return cfg.APIKey == "g-key" &&
				cfg.Model == "gemini-2.5-flash" &&
				cfg.SystemInstruction == ExaminerPersona
		})).Return(gemini.Session(chat)).Once()

		if _, err := svc.NewSpeakingSession(context.Background()); err != nil {
			t.Fatalf("NewSpeakingSession: %v", err)
		}
		api.AssertExpectations(t)
	})

	t.Run("compat session leads with persona", func(t *testing.T) {
		svc, completer, _ := newTestService(t, &settings.UserSettings{
			Provider: provider.DeepSeek, Model: "deepseek-chat", APIKey: "dk",
		})
		session, err := svc.NewSpeakingSession(context.Background())
		if err != nil {
			t.Fatalf("NewSpeakingSession: %v", err)
		}

		completer.On("Complete", mock.Anything, mock.MatchedBy(func(req compat.Request) bool {
			return !req.JSONMode && // speaking replies are free text
				len(req.Messages) == 2 &&
				req.Messages[0].Role == compat.RoleSystem &&
				strings.Contains(req.Messages[0].Content, "IELTS Speaking Examiner") &&
				strings.Contains(req.Messages[0].Content, "ONE question at a time") &&
				strings.Contains(req.Messages[0].Content, "ONLY English")
		})).Return("Good morning, what is your full name?", nil).Once()

		if _, err := session.SendMessage(context.Background(), "Hello"); err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		completer.AssertExpectations(t)
	})

	t.Run("no credential", func(t *testing.T) {
		svc, _, _ := newTestService(t, nil)
		if _, err := svc.NewSpeakingSession(context.Background()); !errors.Is(err, ErrNotConfigured) {
			t.Errorf("error = %v, want ErrNotConfigured", err)
		}
	})
}

func TestCompatSessionOrderPreserving(t *testing.T) {
	svc, completer, _ := newTestService(t, &settings.UserSettings{
		Provider: provider.OpenAI, Model: "gpt-4o", APIKey: "sk",
	})
	session, err := svc.NewSpeakingSession(context.Background())
	if err != nil {
		t.Fatalf("NewSpeakingSession: %v", err)
	}
	ctx := context.Background()

	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req compat.Request) bool {
		return len(req.Messages) == 2 && req.Messages[1].Content == "A"
	})).Return("reply-A", nil).Once()
	// The second turn must replay system, A, reply-A, B in that order.
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req compat.Request) bool {
		return len(req.Messages) == 4 &&
			req.Messages[1].Content == "A" &&
			req.Messages[2].Role == compat.RoleAssistant &&
			req.Messages[2].Content == "reply-A" &&
			req.Messages[3].Content == "B"
	})).Return("reply-B", nil).Once()

	if _, err := session.SendMessage(ctx, "A"); err != nil {
		t.Fatalf("turn A: %v", err)
	}
	if _, err := session.SendMessage(ctx, "B"); err != nil {
		t.Fatalf("turn B: %v", err)
	}
	completer.AssertExpectations(t)

	transcript := session.Transcript()
	wantOrder := []struct{ role, text string }{
		{RoleUser, "A"},
		{RoleModel, "reply-A"},
		{RoleUser, "B"},
		{RoleModel, "reply-B"},
	}
	if len(transcript) != len(wantOrder) {
		t.Fatalf("transcript length = %d, want %d", len(transcript), len(wantOrder))
	}
	for i, want := range wantOrder {
		if transcript[i].Role != want.role || transcript[i].Text != want.text {
			t.Errorf("transcript[%d] = %s %q, want %s %q",
				i, transcript[i].Role, transcript[i].Text, want.role, want.text)
		}
		if transcript[i].Timestamp.IsZero() {
			t.Errorf("transcript[%d] missing timestamp", i)
		}
	}
}

func TestFailedTurnKeepsUserMessage(t *testing.T) {
	svc, completer, _ := newTestService(t, &settings.UserSettings{
		Provider: provider.OpenAI, Model: "gpt-4o", APIKey: "sk",
	})
	session, err := svc.NewSpeakingSession(context.Background())
	if err != nil {
		t.Fatalf("NewSpeakingSession: %v", err)
	}

	completer.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("provider request failed")).Once()

	if _, err := session.SendMessage(context.Background(), "A"); err == nil {
		t.Fatal("expected error")
	}

	transcript := session.Transcript()
	if len(transcript) != 1 || transcript[0].Role != RoleUser || transcript[0].Text != "A" {
		t.Fatalf("transcript after failed turn = %+v, want the user turn only", transcript)
	}

	// The failed turn's user message stays in the replayed history.
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req compat.Request) bool {
		return len(req.Messages) == 3 && req.Messages[1].Content == "A" && req.Messages[2].Content == "B"
	})).Return("reply-B", nil).Once()
	if _, err := session.SendMessage(context.Background(), "B"); err != nil {
		t.Fatalf("turn B: %v", err)
	}
	completer.AssertExpectations(t)
}

func TestGeminiSessionTranscript(t *testing.T) {
	svc, _, api := newTestService(t, &settings.UserSettings{
		Provider: provider.Google, Model: "gemini-2.5-flash", APIKey: "g-key",
	})
	chat := &gemini.MockSession{}
	api.On("NewChat", mock.Anything).Return(gemini.Session(chat)).Once()
	chat.On("SendMessage", mock.Anything, "Hello").Return("What is your name?", nil).Once()

	session, err := svc.NewSpeakingSession(context.Background())
	if err != nil {
		t.Fatalf("NewSpeakingSession: %v", err)
	}
	reply, err := session.SendMessage(context.Background(), "Hello")
	if err != nil || reply != "What is your name?" {
		t.Fatalf("SendMessage = %q, %v", reply, err)
	}

	transcript := session.Transcript()
	if len(transcript) != 2 || transcript[0].Role != RoleUser || transcript[1].Role != RoleModel {
		t.Fatalf("transcript = %+v", transcript)
	}
	chat.AssertExpectations(t)
}
