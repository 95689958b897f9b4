package inference

import "context"

// Generator produces a free-text reply for a prompt. Implementations wrap a
// concrete model backend (local model API or Gemini).
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
