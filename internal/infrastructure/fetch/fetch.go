// Package fetch downloads images over HTTP(S).
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/alzia/storefront/internal/core/ports"
)

const (
	defaultTimeout = 60 * time.Second
	defaultMaxSize = 32 << 20
)

type Fetcher struct {
	client  *http.Client
	maxSize int64
}

// New returns a Fetcher. timeout <= 0 uses one minute.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}, maxSize: defaultMaxSize}
}

// Fetch downloads url. Non-2xx responses and bodies over the size cap are errors.
// The content type falls back to sniffing when the server omits or
// generalises it.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*ports.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, fmt.Errorf("get %s: body exceeds %d bytes", url, f.maxSize)
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" || strings.HasPrefix(ct, "application/octet-stream") {
		ct = mimetype.Detect(data).String()
	}
	return &ports.Image{Data: data, ContentType: ct}, nil
}
