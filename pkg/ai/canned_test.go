package ai

import (
	"context"
	"strings"
	"testing"
)

func TestCannedGeneratorKeywordMatch(t *testing.T) {
	g := NewCannedGenerator()

	reply, err := g.GenerateText(context.Background(), "", "Hello there")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(reply, "ThinkByte assistant") {
		t.Fatalf("unexpected reply for greeting: %q", reply)
	}

	reply, err = g.GenerateText(context.Background(), "", "how do I update my PROFILE?")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(reply, "Edit Profile") {
		t.Fatalf("expected profile instructions, got %q", reply)
	}
}

func TestCannedGeneratorDefaultReply(t *testing.T) {
	g := NewCannedGenerator()
	reply, err := g.GenerateText(context.Background(), "", "what is the weather like")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != DefaultCannedReply {
		t.Fatalf("expected default reply, got %q", reply)
	}
}

func TestCannedGeneratorStableOrder(t *testing.T) {
	g := NewCannedGenerator()
	// "hello" outranks "help" when both appear.
	reply, err := g.GenerateText(context.Background(), "", "hello, I need help")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(reply, "How can I help you today?") {
		t.Fatalf("expected greeting reply, got %q", reply)
	}
}
