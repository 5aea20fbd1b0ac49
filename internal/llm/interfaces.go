package llm

import "context"

// TextGenerator is the generative-text collaborator. It accepts a prompt and
// returns free-form text that is expected to contain a JSON payload,
// possibly wrapped in Markdown fences.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
	GetModel() string
}
