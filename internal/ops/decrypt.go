package ops

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/example/pdf-workbench/internal/models"
)

// DecryptOp removes encryption from a password-protected document using the
// password stored with it.
type DecryptOp struct{}

func (t *DecryptOp) Name() string { return "decrypt" }

func (t *DecryptOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	if !doc.Encrypted {
		return nil, "", fmt.Errorf("ops: document %s is not encrypted", doc.ID)
	}
	out, err := decryptedBytes(doc)
	if err != nil {
		return nil, "", err
	}
	name := "unprotected_" + doc.Name
	return map[string]any{
		"name":       name,
		"size":       len(out),
		"pdf_base64": base64.StdEncoding.EncodeToString(out),
	}, fmt.Sprintf("bytes=%d", len(out)), nil
}
