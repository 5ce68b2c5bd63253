package app

import (
	"context"
	"fmt"
	"strings"

	"thinkbyte/pkg/ai"
)

// placeholderAPIKey matches the unconfigured template value shipped in env
// examples; it must not be treated as a real key.
const placeholderAPIKey = "your_gemini_api_key_here"

const defaultGenerationModel = "gemini-2.0-flash"

const systemPrompt = "You are the ThinkByte assistant. ThinkByte is a skill-exchange " +
	"marketplace where people teach what they know and learn what they don't. " +
	"Help users with browsing skills, profiles, swap requests, messaging and ratings. " +
	"Keep answers short and practical."

// Config holds runtime configuration for the assistant core.
type Config struct {
	GeminiAPIKey    string
	GenerationModel string

	// Generator overrides provider selection, used by tests.
	Generator ai.TextGenerator
}

// App relays chat prompts to the configured text generator.
type App struct {
	generator ai.TextGenerator
}

// New selects Gemini when a usable API key is present, the canned table
// otherwise.
func New(cfg Config) (*App, error) {
	generator := cfg.Generator
	if generator == nil {
		key := strings.TrimSpace(cfg.GeminiAPIKey)
		if key == "" || key == placeholderAPIKey {
			generator = ai.NewCannedGenerator()
		} else {
			client, err := ai.NewGeminiClient(key)
			if err != nil {
				return nil, fmt.Errorf("init gemini client: %w", err)
			}
			model := cfg.GenerationModel
			if model == "" {
				model = defaultGenerationModel
			}
			generator = ai.NewGeminiGenerator(client, model)
		}
	}
	return &App{generator: generator}, nil
}

// Reply produces the assistant's answer to a user message.
func (a *App) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrMessageRequired
	}
	reply, err := a.generator.GenerateText(ctx, systemPrompt, message)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply, nil
}
