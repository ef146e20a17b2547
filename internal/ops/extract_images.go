package ops

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/example/pdf-workbench/internal/models"
)

// ExtractImagesOp writes the embedded images of the selected pages into a
// scratch dir via pdfcpu and returns them base64-encoded.
type ExtractImagesOp struct{}

func (t *ExtractImagesOp) Name() string { return "extract_images" }

type extractedImage struct {
	Name   string `json:"name"`
	Format string `json:"format"`
	Size   int    `json:"size"`
	Data   string `json:"data_base64"`
}

func (t *ExtractImagesOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	pageCount, err := pageCountOf(doc)
	if err != nil {
		return nil, "", err
	}
	indices, err := selectPages(getString(inputs, "pages", "all"), pageCount)
	if err != nil {
		return nil, "", err
	}

	inPath, dir, cleanup, err := scratchPDF(doc)
	if err != nil {
		return nil, "", err
	}
	defer cleanup()

	outDir := filepath.Join(dir, "images")
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return nil, "", err
	}
	if err := api.ExtractImagesFile(inPath, outDir, onePageSpecs(indices), pdfcpuConf(doc)); err != nil {
		return nil, "", fmt.Errorf("ops: extracting images: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, "", err
	}
	report := progressFrom(ctx)
	images := make([]extractedImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			return nil, "", err
		}
		images = append(images, extractedImage{
			Name:   entry.Name(),
			Format: strings.TrimPrefix(filepath.Ext(entry.Name()), "."),
			Size:   len(data),
			Data:   base64.StdEncoding.EncodeToString(data),
		})
		report(fmt.Sprintf("collected %s", entry.Name()))
	}
	return images, fmt.Sprintf("pages=%d/%d images=%d", len(indices), pageCount, len(images)), nil
}

// pageCountOf asks pdfcpu for the page count; used by the ops that never open
// the ledongthuc reader.
func pageCountOf(doc *models.Document) (int, error) {
	inPath, _, cleanup, err := scratchPDF(doc)
	if err != nil {
		return 0, err
	}
	defer cleanup()
	n, err := api.PageCountFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("ops: counting pages of %s: %w", doc.ID, err)
	}
	return n, nil
}
