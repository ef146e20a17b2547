package ops

import (
	"context"
	"fmt"

	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/providers/llm"
)

// SummarizeOp extracts the selected pages' text and asks the configured LLM
// for a short summary. With no provider configured the mock client answers.
type SummarizeOp struct{ Client llm.Client }

func (s *SummarizeOp) Name() string { return "summarize" }

func (s *SummarizeOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	text := getString(inputs, "text", "")
	logs := ""
	if text == "" {
		texts, total, err := pageTexts(ctx, doc, getString(inputs, "pages", "all"))
		if err != nil {
			return nil, "", err
		}
		for _, t := range texts {
			if t == "" {
				continue
			}
			if text != "" {
				text += "\n\n"
			}
			text += t
		}
		logs = fmt.Sprintf("pages=%d/%d chars=%d", len(texts), total, len(text))
	}
	if text == "" {
		return nil, "", fmt.Errorf("ops: no text to summarize")
	}

	prompt := fmt.Sprintf("Summarize the following document in a concise way (3-5 bullet points or a short paragraph). Focus on key facts.\n\nText:\n%s", text)
	out, err := s.Client.GenerateText(ctx, prompt)
	if err != nil {
		return nil, "", err
	}
	return out, logs, nil
}
