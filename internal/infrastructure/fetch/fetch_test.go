package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/typed.png":
			w.Header().Set("Content-Type", "image/webp")
			_, _ = w.Write(pngHeader)
		case "/octet":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(pngHeader)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(5 * time.Second)

	img, err := f.Fetch(context.Background(), srv.URL+"/typed.png")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.ContentType != "image/webp" || len(img.Data) != len(pngHeader) {
		t.Fatalf("unexpected image %q (%d bytes)", img.ContentType, len(img.Data))
	}

	img, err = f.Fetch(context.Background(), srv.URL+"/octet")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.ContentType != "image/png" {
		t.Fatalf("expected sniffed image/png, got %q", img.ContentType)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestFetcher_SizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	f := New(time.Second)
	f.maxSize = 16
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected size error")
	}
}
