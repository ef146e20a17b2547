package ops

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/example/pdf-workbench/internal/models"
)

// ConvertDocxOp converts the document to a word-processor file. The
// conversion is text-level: each PDF page becomes a run of paragraphs in the
// generated .docx, layout and images are not carried over.
type ConvertDocxOp struct{}

func (t *ConvertDocxOp) Name() string { return "convert_docx" }

func (t *ConvertDocxOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	pagesSpec := getString(inputs, "pages", "all")
	texts, total, err := pageTexts(ctx, doc, pagesSpec)
	if err != nil {
		return nil, "", err
	}

	w := docx.New().WithDefaultTheme()
	for i, text := range texts {
		if i > 0 {
			w.AddParagraph() // blank separator between pages
		}
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			w.AddParagraph().AddText(line)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, "", fmt.Errorf("ops: writing docx: %w", err)
	}

	name := strings.TrimSuffix(doc.Name, ".pdf") + ".docx"
	return map[string]any{
		"name":        name,
		"size":        buf.Len(),
		"docx_base64": base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, fmt.Sprintf("pages=%d/%d bytes=%d", len(texts), total, buf.Len()), nil
}
