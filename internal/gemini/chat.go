package gemini

import "context"

// Session is a multi-turn conversation: send one message, receive one reply.
type Session interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// ChatConfig fixes the credential, model and system instruction for the
// lifetime of one chat.
type ChatConfig struct {
	APIKey            string
	Model             string
	SystemInstruction string
}

// Chat accumulates the conversation and replays it on every turn; the caller
// never sees the history management. Turns must be sent one at a time.
type Chat struct {
	client  *Client
	cfg     ChatConfig
	history []content
}

// NewChat starts an empty conversation under the given config.
func (c *Client) NewChat(cfg ChatConfig) Session {
	return &Chat{client: c, cfg: cfg}
}

// SendMessage appends the user's turn, requests a reply with the full history
// and records the model's answer. A failed turn keeps the user's message in
// the history; it is not rolled back.
func (ch *Chat) SendMessage(ctx context.Context, text string) (string, error) {
	ch.history = append(ch.history, content{Role: roleUser, Parts: []part{{Text: text}}})

	body := generateContentRequest{
		Contents:          ch.history,
		SystemInstruction: &content{Parts: []part{{Text: ch.cfg.SystemInstruction}}},
	}
	reply, err := ch.client.generate(ctx, ch.cfg.APIKey, ch.cfg.Model, body)
	if err != nil {
		return "", err
	}

	ch.history = append(ch.history, content{Role: roleModel, Parts: []part{{Text: reply}}})
	return reply, nil
}
