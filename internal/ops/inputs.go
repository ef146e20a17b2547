package ops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	pdfx "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/example/pdf-workbench/internal/models"
	"github.com/example/pdf-workbench/internal/pagerange"
)

func getString(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func getInt(m map[string]any, key string, def int) int {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case float64:
			return int(t)
		case int:
			return t
		case string:
			if n, err := strconv.Atoi(t); err == nil {
				return n
			}
		}
	}
	return def
}

func getFloat(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok {
		switch t := v.(type) {
		case float64:
			return t
		case int:
			return float64(t)
		case string:
			if f, err := strconv.ParseFloat(t, 64); err == nil {
				return f
			}
		}
	}
	return def
}

func getBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// selectPages resolves a "pages" input against a real page count. "all" (or
// empty) selects every page. Anything else goes through the page-range
// parser; indices outside [0, pageCount) are silently skipped.
func selectPages(spec string, pageCount int) ([]int, error) {
	if spec == "" || spec == "all" {
		indices := make([]int, pageCount)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}
	parsed, err := pagerange.Parse(spec)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, len(parsed))
	for _, idx := range parsed {
		if idx >= 0 && idx < pageCount {
			indices = append(indices, idx)
		}
	}
	return indices, nil
}

// onePageSpecs converts zero-based indices to the one-based page selection
// strings pdfcpu expects.
func onePageSpecs(indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = strconv.Itoa(idx + 1)
	}
	return out
}

// openReader opens the document with the ledongthuc/pdf reader, supplying the
// stored password when the file is encrypted.
func openReader(doc *models.Document) (*pdfx.Reader, error) {
	ra := bytes.NewReader(doc.Data)
	size := int64(len(doc.Data))
	if doc.Encrypted || doc.Password != "" {
		return pdfx.NewReaderEncrypted(ra, size, passwordOnce(doc.Password))
	}
	return pdfx.NewReader(ra, size)
}

// passwordOnce yields pw a single time. The reader keeps calling back until
// it gets an empty string, so a wrong stored password must not repeat.
func passwordOnce(pw string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return pw
	}
}

// scratchPDF writes the document bytes to a scratch dir for the file-based
// pdfcpu calls. The caller must invoke cleanup on every exit path.
func scratchPDF(doc *models.Document) (inPath, dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "pdfop")
	if err != nil {
		return "", "", nil, err
	}
	cleanup = func() { os.RemoveAll(dir) }
	inPath = filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(inPath, doc.Data, 0o600); err != nil {
		cleanup()
		return "", "", nil, err
	}
	return inPath, dir, cleanup, nil
}

func pdfcpuConf(doc *models.Document) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	if doc.Password != "" {
		conf.UserPW = doc.Password
		conf.OwnerPW = doc.Password
	}
	return conf
}

// decryptedBytes returns the document bytes with encryption removed, or the
// original bytes for an unencrypted document.
func decryptedBytes(doc *models.Document) ([]byte, error) {
	if !doc.Encrypted {
		return doc.Data, nil
	}
	if doc.Password == "" {
		return nil, fmt.Errorf("ops: document %s is encrypted and no password is set", doc.ID)
	}
	inPath, dir, cleanup, err := scratchPDF(doc)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	outPath := filepath.Join(dir, "decrypted.pdf")
	if err := api.DecryptFile(inPath, outPath, pdfcpuConf(doc)); err != nil {
		return nil, fmt.Errorf("ops: decrypting %s: %w", doc.ID, err)
	}
	return os.ReadFile(outPath)
}
