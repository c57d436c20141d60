package exam

import (
	"context"
	"testing"
)

type stubSession struct{ name string }

func (s *stubSession) SendMessage(_ context.Context, _ string) (string, error) { return "", nil }
func (s *stubSession) Transcript() []ChatMessage                               { return nil }

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	a := &stubSession{name: "a"}
	b := &stubSession{name: "b"}
	idA := r.Add(a)
	idB := r.Add(b)
	if idA == idB {
		t.Fatal("ids must be unique")
	}

	got, ok := r.Get(idA)
	if !ok || got != Session(a) {
		t.Errorf("Get(%q) = %v, %v", idA, got, ok)
	}

	r.Remove(idA)
	if _, ok := r.Get(idA); ok {
		t.Error("session still present after Remove")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", r.Len())
	}
	if _, ok := r.Get(idB); ok {
		t.Error("session survived Reset")
	}
}
