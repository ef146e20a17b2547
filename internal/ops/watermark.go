package ops

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/example/pdf-workbench/internal/cache"
	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/watermark"
)

// WatermarkOp stamps a tiled diagonal label beneath every page. The rendered
// layer depends only on the label, font size, color, transparency and page
// size, so identical requests are served from the explicit cache.
type WatermarkOp struct {
	Cache *cache.Cache
}

func (t *WatermarkOp) Name() string { return "watermark" }

func (t *WatermarkOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	spec := watermark.Spec{
		Label:        getString(inputs, "label", ""),
		Size:         getInt(inputs, "size", 30),
		Color:        getString(inputs, "color", "#000000"),
		Transparency: getFloat(inputs, "transparency", 0.25),
	}
	if spec.Label == "" {
		return nil, "", fmt.Errorf("ops: missing watermark label")
	}
	stepX := getFloat(inputs, "step_x", watermark.DefaultStepX)
	stepY := getFloat(inputs, "step_y", watermark.DefaultStepY)

	pageW, pageH, err := firstPageDims(doc)
	if err != nil {
		return nil, "", err
	}

	layer, cached, err := t.layer(spec, pageW, pageH, stepX, stepY)
	if err != nil {
		return nil, "", err
	}
	report := progressFrom(ctx)
	report(fmt.Sprintf("rendered %.0fx%.0f layer (cached=%v)", pageW, pageH, cached))

	out, err := watermark.Merge(doc.Data, layer, doc.Password)
	if err != nil {
		return nil, "", err
	}
	report("merged layer beneath all pages")

	return map[string]any{
		"name":       "watermarked_" + doc.Name,
		"size":       len(out),
		"pdf_base64": base64.StdEncoding.EncodeToString(out),
	}, fmt.Sprintf("label=%q bytes=%d cached_layer=%v", spec.Label, len(out), cached), nil
}

// layer renders the tile canvas, going through the cache when one is wired.
func (t *WatermarkOp) layer(spec watermark.Spec, pageW, pageH, stepX, stepY float64) ([]byte, bool, error) {
	key := fmt.Sprintf("wm:%s|%d|%s|%g|%gx%g|%g,%g",
		spec.Label, spec.Size, spec.Color, spec.Transparency, pageW, pageH, stepX, stepY)
	if t.Cache != nil {
		if b, ok := t.Cache.Get(key); ok {
			return b, true, nil
		}
	}
	canvas, err := watermark.RenderGrid(spec, pageW, pageH, stepX, stepY)
	if err != nil {
		return nil, false, err
	}
	b, err := canvas.Bytes()
	if err != nil {
		return nil, false, err
	}
	if t.Cache != nil {
		t.Cache.Put(key, b)
	}
	return b, false, nil
}

// firstPageDims returns the media box of page one; the layer is sized to it
// and pdfcpu centers it on every page during the merge. The stored password
// unlocks encrypted documents.
func firstPageDims(doc *models.Document) (w, h float64, err error) {
	dims, err := api.PageDims(bytes.NewReader(doc.Data), pdfcpuConf(doc))
	if err != nil {
		return 0, 0, fmt.Errorf("ops: reading page dimensions of %s: %w", doc.ID, err)
	}
	if len(dims) == 0 {
		// US Letter fallback
		return 612, 792, nil
	}
	return dims[0].Width, dims[0].Height, nil
}
