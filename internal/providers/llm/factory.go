package llm

import (
	"os"
	"strings"
)

// NewFromEnv returns a Client based on environment variables:
// GOOGLE_API_KEY selects Gemini, optional LLM_MODEL overrides the model.
// With nothing configured the MockClient is returned.
func NewFromEnv() Client {
	if key := strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")); key != "" {
		return &GeminiClient{APIKey: key, Model: modelWithDefault("LLM_MODEL", "gemini-1.5-flash")}
	}
	return &MockClient{}
}

func modelWithDefault(envKey, def string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return def
}
