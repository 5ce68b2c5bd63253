package ai

import "context"

// TextGenerator produces an assistant reply from a system prompt and the
// user's message. Both the Gemini client and the canned fallback implement it.
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
