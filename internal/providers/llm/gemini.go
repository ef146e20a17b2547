package llm

import (
	"context"
	"fmt"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	APIKey string
	Model  string
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.APIKey))
	if err != nil {
		return "", fmt.Errorf("llm: creating gemini client: %w", err)
	}
	defer client.Close()

	resp, err := client.GenerativeModel(c.Model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if out := firstText(resp); out != "" {
		return out, nil
	}
	return "", fmt.Errorf("llm: empty gemini response")
}

func firstText(r *genai.GenerateContentResponse) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
