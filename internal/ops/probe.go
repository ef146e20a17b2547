package ops

import (
	"bytes"
	"errors"

	pdfx "github.com/ledongthuc/pdf"

	"github.com/example/pdf-workbench/internal/models"
)

// Probe fills Pages and Encrypted on a freshly loaded document. Only a
// password failure marks the document encrypted; a file the reader cannot
// parse at all stays unencrypted with a zero page count. For an encrypted
// document the page count stays zero until the right password is stored.
func Probe(doc *models.Document) {
	size := int64(len(doc.Data))
	if r, err := pdfx.NewReader(bytes.NewReader(doc.Data), size); err == nil {
		doc.Pages = r.NumPage()
		doc.Encrypted = false
		return
	} else if !errors.Is(err, pdfx.ErrInvalidPassword) {
		return
	}
	doc.Encrypted = true
	if r, err := pdfx.NewReaderEncrypted(bytes.NewReader(doc.Data), size, passwordOnce(doc.Password)); err == nil {
		doc.Pages = r.NumPage()
	}
}
