package exam

import (
	"context"
	"fmt"
	"time"

	"ielts-coach/internal/compat"
	"ielts-coach/internal/gemini"
)

// Session is a speaking exercise: send one message, receive one reply.
// Callers must serialize SendMessage; each turn depends on the previous
// one's accumulated history.
type Session interface {
	SendMessage(ctx context.Context, text string) (string, error)
	Transcript() []ChatMessage
}

// NewSpeakingSession picks the session variant from current settings. The
// caller sends the opening prompt that elicits the examiner's introduction.
func (s *Service) NewSpeakingSession(ctx context.Context) (Session, error) {
	st, desc, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	if desc.Native() {
		chat := s.Gemini.NewChat(gemini.ChatConfig{
			APIKey:            st.APIKey,
			Model:             st.Model,
			SystemInstruction: ExaminerPersona,
		})
		return &geminiSession{chat: chat}, nil
	}

	return &compatSession{
		completer: s.Compat,
		request:   compatRequest(st, desc, nil, false),
		history:   []compat.Message{{Role: compat.RoleSystem, Content: ExaminerPersona}},
	}, nil
}

// geminiSession delegates history management to the native chat primitive
// and only mirrors the transcript for the caller.
type geminiSession struct {
	chat       gemini.Session
	transcript []ChatMessage
}

func (s *geminiSession) SendMessage(ctx context.Context, text string) (string, error) {
	s.transcript = append(s.transcript, ChatMessage{Role: RoleUser, Text: text, Timestamp: time.Now()})
	reply, err := s.chat.SendMessage(ctx, text)
	if err != nil {
		// The user's turn stays recorded even when the reply fails.
		return "", fmt.Errorf("speaking turn: %w", err)
	}
	s.transcript = append(s.transcript, ChatMessage{Role: RoleModel, Text: reply, Timestamp: time.Now()})
	return reply, nil
}

func (s *geminiSession) Transcript() []ChatMessage {
	out := make([]ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// compatSession owns an explicit message list, leading with the examiner
// persona, and replays the whole history through the generic transport on
// every turn. Speaking replies are free text, so JSON mode stays off. The
// history grows unbounded for the lifetime of one exercise.
type compatSession struct {
	completer  compat.Completer
	request    compat.Request
	history    []compat.Message
	transcript []ChatMessage
}

func (s *compatSession) SendMessage(ctx context.Context, text string) (string, error) {
	s.history = append(s.history, compat.Message{Role: compat.RoleUser, Content: text})
	s.transcript = append(s.transcript, ChatMessage{Role: RoleUser, Text: text, Timestamp: time.Now()})

	req := s.request
	req.Messages = s.history
	reply, err := s.completer.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speaking turn: %w", err)
	}

	s.history = append(s.history, compat.Message{Role: compat.RoleAssistant, Content: reply})
	s.transcript = append(s.transcript, ChatMessage{Role: RoleModel, Text: reply, Timestamp: time.Now()})
	return reply, nil
}

func (s *compatSession) Transcript() []ChatMessage {
	out := make([]ChatMessage, len(s.transcript))
	copy(out, s.transcript)
	return out
}
