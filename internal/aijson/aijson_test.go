package aijson

import (
	"errors"
	"testing"
)

type sample struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func TestExtractEquivalence(t *testing.T) {
	payload := `{"title":"Space","count":3}`
	wrappers := map[string]string{
		"labeled fence": "Here you go:\n```json\n" + payload + "\n```\nHope that helps!",
		"plain fence":   "```\n" + payload + "\n```",
		"bare text":     payload,
		"padded text":   "  \n" + payload + "\n",
	}

	for name, text := range wrappers {
		t.Run(name, func(t *testing.T) {
			got, err := Decode[sample](text)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got.Title != "Space" || got.Count != 3 {
				t.Errorf("Decode = %+v", got)
			}
		})
	}
}

func TestExtractPrefersLabeledFence(t *testing.T) {
	text := "```\nnot it\n```\n```json\n{\"title\":\"right\"}\n```"
	if got := Extract(text); got != `{"title":"right"}` {
		t.Errorf("Extract = %q", got)
	}
}

func TestDecodeRepairsSloppyJSON(t *testing.T) {
	// Unquoted keys and a trailing comma, the usual model sins.
	got, err := Decode[sample]("```json\n{title: 'Space', count: 3,}\n```")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Title != "Space" || got.Count != 3 {
		t.Errorf("Decode = %+v", got)
	}
}

func TestDecodeMalformed(t *testing.T) {
	inputs := []string{
		"I'm sorry, I can't produce that test right now.",
		"```json\n[1,2\n```and some prose {",
	}
	for _, text := range inputs {
		if _, err := Decode[sample](text); !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformed", text, err)
		}
	}
}
