package ports

import "context"

// Completion is a single-turn chat completion request.
type Completion struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// ChatCompleter is the external language-inference capability. Implementations
// return the raw assistant text or an error.
type ChatCompleter interface {
	Complete(ctx context.Context, req Completion) (string, error)
}
