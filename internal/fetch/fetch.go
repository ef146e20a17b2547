// Package fetch retrieves remote PDFs over HTTP. Repeated fetches of the same
// URL are served from the explicit cache instead of re-downloading.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/example/pdf-workbench/internal/cache"
)

var pdfMagic = []byte("%PDF-")

type Fetcher struct {
	Client   *http.Client
	Cache    *cache.Cache
	MaxBytes int
}

func New(c *cache.Cache) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Cache:    c,
		MaxBytes: envInt("FETCH_MAX_BYTES", 50<<20),
	}
}

// PDF downloads url and returns the raw bytes after checking the PDF header.
func (f *Fetcher) PDF(ctx context.Context, url string) ([]byte, error) {
	if f.Cache != nil {
		if b, ok := f.Cache.Get("url:" + url); ok {
			return b, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: GET %s: status %d", url, resp.StatusCode)
	}

	lr := io.LimitedReader{R: resp.Body, N: int64(f.MaxBytes) + 1}
	b, err := io.ReadAll(&lr)
	if err != nil {
		return nil, err
	}
	if len(b) > f.MaxBytes {
		return nil, fmt.Errorf("fetch: %s exceeds limit of %d bytes", url, f.MaxBytes)
	}
	if !bytes.HasPrefix(b, pdfMagic) {
		return nil, fmt.Errorf("fetch: %s is not a PDF file", url)
	}

	if f.Cache != nil {
		f.Cache.Put("url:"+url, b)
	}
	return b, nil
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
