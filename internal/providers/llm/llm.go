// Package llm provides the text-generation client used by the summarize
// operation: Gemini when a key is configured, a mock otherwise.
package llm

import (
	"context"
)

type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
