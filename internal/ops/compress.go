package ops

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/example/pdf-workbench/internal/models"
)

// CompressOp rewrites the document through the pdfcpu optimizer: duplicate
// resources are merged and content streams recompressed. This can be CPU
// intensive on large files.
type CompressOp struct{}

func (t *CompressOp) Name() string { return "compress" }

func (t *CompressOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	inPath, dir, cleanup, err := scratchPDF(doc)
	if err != nil {
		return nil, "", err
	}
	defer cleanup()

	outPath := filepath.Join(dir, "optimized.pdf")
	if err := api.OptimizeFile(inPath, outPath, pdfcpuConf(doc)); err != nil {
		return nil, "", fmt.Errorf("ops: optimizing %s: %w", doc.ID, err)
	}
	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, "", err
	}

	saved := len(doc.Data) - len(out)
	return map[string]any{
		"name":        "compressed_" + doc.Name,
		"bytes_in":    len(doc.Data),
		"bytes_out":   len(out),
		"bytes_saved": saved,
		"pdf_base64":  base64.StdEncoding.EncodeToString(out),
	}, fmt.Sprintf("bytes_in=%d bytes_out=%d", len(doc.Data), len(out)), nil
}
