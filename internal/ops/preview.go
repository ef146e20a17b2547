package ops

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/example/pdf-workbench/internal/models"
)

// PreviewOp rasterizes the selected pages to PNG for in-browser preview.
// Encrypted documents are unlocked with the stored password first.
type PreviewOp struct{}

func (t *PreviewOp) Name() string { return "preview" }

type previewPage struct {
	Page int    `json:"page"` // one-based
	PNG  string `json:"png_base64"`
}

func (t *PreviewOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	data, err := decryptedBytes(doc)
	if err != nil {
		return nil, "", err
	}
	fz, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, "", fmt.Errorf("ops: opening %s for preview: %w", doc.ID, err)
	}
	defer fz.Close()

	total := fz.NumPage()
	indices, err := selectPages(getString(inputs, "pages", "all"), total)
	if err != nil {
		return nil, "", err
	}
	maxPages := getInt(inputs, "max_pages", envInt("PREVIEW_MAX_PAGES", 10))
	if len(indices) > maxPages {
		indices = indices[:maxPages]
	}

	report := progressFrom(ctx)
	pages := make([]previewPage, 0, len(indices))
	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		img, err := fz.Image(idx)
		if err != nil {
			return nil, "", fmt.Errorf("ops: rendering page %d: %w", idx+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		pages = append(pages, previewPage{
			Page: idx + 1,
			PNG:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		})
		report(fmt.Sprintf("rendered page %d/%d", idx+1, total))
	}
	return pages, fmt.Sprintf("pages=%d/%d", len(pages), total), nil
}
