package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/pdf-workbench/internal/models"
)

// ExtractTextOp pulls plain text from the selected pages.
type ExtractTextOp struct{}

func (t *ExtractTextOp) Name() string { return "extract_text" }

func (t *ExtractTextOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	pagesSpec := getString(inputs, "pages", "all")
	texts, total, err := pageTexts(ctx, doc, pagesSpec)
	if err != nil {
		return nil, "", err
	}
	var out strings.Builder
	for _, t := range texts {
		if t == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(t)
	}
	return out.String(), fmt.Sprintf("pages=%d/%d", len(texts), total), nil
}

// pageTexts extracts the text of every selected page, in selection order.
// Returns one entry per selected page (possibly empty) and the page count.
func pageTexts(ctx context.Context, doc *models.Document, pagesSpec string) ([]string, int, error) {
	r, err := openReader(doc)
	if err != nil {
		return nil, 0, fmt.Errorf("ops: reading %s: %w", doc.ID, err)
	}
	total := r.NumPage()
	indices, err := selectPages(pagesSpec, total)
	if err != nil {
		return nil, 0, err
	}

	report := progressFrom(ctx)
	texts := make([]string, 0, len(indices))
	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		page := r.Page(idx + 1)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		txt, err := page.GetPlainText(nil)
		if err != nil {
			return nil, 0, fmt.Errorf("ops: extracting text from page %d: %w", idx+1, err)
		}
		texts = append(texts, strings.TrimSpace(txt))
		report(fmt.Sprintf("extracted page %d/%d", idx+1, total))
	}
	return texts, total, nil
}
