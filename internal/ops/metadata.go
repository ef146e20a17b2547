package ops

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	pdfx "github.com/ledongthuc/pdf"

	"github.com/example/pdf-workbench/internal/models"
)

// MetadataOp reads the document Info dictionary and page count. PDF-style
// date strings are converted to a readable form.
type MetadataOp struct{}

func (t *MetadataOp) Name() string { return "metadata" }

func (t *MetadataOp) Execute(ctx context.Context, doc *models.Document, inputs map[string]any) (any, string, error) {
	r, err := openReader(doc)
	if err != nil {
		return nil, "", fmt.Errorf("ops: reading %s: %w", doc.ID, err)
	}

	meta := map[string]string{
		"NumberOfPages": strconv.Itoa(r.NumPage()),
	}
	info := r.Trailer().Key("Info")
	if info.Kind() == pdfx.Dict {
		for _, key := range info.Keys() {
			value := formatValue(info.Key(key))
			if isPDFDate(value) {
				value = convertPDFDate(value)
			}
			meta[key] = value
		}
	}
	return meta, fmt.Sprintf("keys=%d", len(meta)), nil
}

func formatValue(v pdfx.Value) string {
	switch v.Kind() {
	case pdfx.String:
		return v.Text()
	case pdfx.Name:
		return v.Name()
	case pdfx.Integer:
		return strconv.FormatInt(v.Int64(), 10)
	case pdfx.Real:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case pdfx.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return v.String()
	}
}

// pdfDateRe matches dates of the form D:20240131120000+01'00'.
var pdfDateRe = regexp.MustCompile(`^D:\d{14}[+-]\d{2}'\d{2}'$`)

func isPDFDate(s string) bool {
	return pdfDateRe.MatchString(s)
}

// convertPDFDate rewrites D:YYYYMMDDHHMMSS±HH'mm' as a readable timestamp with
// the original timezone suffix preserved.
func convertPDFDate(s string) string {
	body := s[2:]
	stamp, tz := body[:14], body[14:]
	parsed, err := time.Parse("20060102150405", stamp)
	if err != nil {
		return s
	}
	return parsed.Format("2006-01-02 15:04:05 ") + tz
}
