// Package aijson turns raw model output into typed values. Models on the
// generic chat path often wrap their JSON in prose or Markdown fences even
// when asked not to, so decoding is extract-then-parse with one repair
// attempt before giving up.
package aijson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrMalformed reports that model output could not be decoded into the
// expected shape. There is no partial recovery past this point.
var ErrMalformed = errors.New("malformed model output")

var (
	fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAny  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// Extract returns the JSON payload inside raw model text: a fenced block
// labeled json first, then any fenced block, else the text itself.
func Extract(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := fencedAny.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}

// Decode extracts the payload from text and unmarshals it into T. A failed
// strict parse gets one jsonrepair pass (models drop quotes and leave
// trailing commas) before the whole response is declared malformed.
func Decode[T any](text string) (T, error) {
	payload := Extract(text)

	var out T
	if err := json.Unmarshal([]byte(payload), &out); err == nil {
		return out, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(payload)
	if repairErr != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrMalformed, repairErr)
	}
	// A failed strict parse can leave out partially filled; decode into a
	// fresh value.
	var fixed T
	if err := json.Unmarshal([]byte(repaired), &fixed); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fixed, nil
}
