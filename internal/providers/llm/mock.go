package llm

import (
	"context"
	"strings"
	"unicode/utf8"
)

// MockClient is used when no real provider is configured. It returns the
// opening of the prompt's text section so the pipeline stays exercisable
// offline.
type MockClient struct{}

func (m *MockClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	body := prompt
	if i := strings.Index(prompt, "Text:\n"); i != -1 {
		body = prompt[i+len("Text:\n"):]
	}
	body = strings.TrimSpace(body)
	if len(body) > 400 {
		cut := 400
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "…"
	}
	return "(mock summary) " + body, nil
}
