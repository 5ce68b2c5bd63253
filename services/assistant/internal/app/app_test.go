package app

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) GenerateText(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func TestReplyRequiresMessage(t *testing.T) {
	a, err := New(Config{Generator: &fakeGenerator{reply: "hi"}})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := a.Reply(context.Background(), "   "); !errors.Is(err, ErrMessageRequired) {
		t.Fatalf("expected ErrMessageRequired, got %v", err)
	}
}

func TestReplyWrapsGeneratorError(t *testing.T) {
	a, err := New(Config{Generator: &fakeGenerator{err: errors.New("boom")}})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if _, err := a.Reply(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error from generator")
	}
}

func TestNewFallsBackToCannedWithoutKey(t *testing.T) {
	for _, key := range []string{"", "your_gemini_api_key_here", "  "} {
		a, err := New(Config{GeminiAPIKey: key})
		if err != nil {
			t.Fatalf("new app with key %q: %v", key, err)
		}
		reply, err := a.Reply(context.Background(), "hello")
		if err != nil {
			t.Fatalf("reply: %v", err)
		}
		if !strings.Contains(reply, "ThinkByte assistant") {
			t.Fatalf("expected canned greeting, got %q", reply)
		}
	}
}
