package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// b64PNG encodes a small solid PNG the way the image API returns data.
func b64PNG(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerateBackground(t *testing.T) {
	silenceLogs(t)

	payload := b64PNG(t, 64, 96)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		fmt.Fprintf(w, `{"data":[{"b64_json":%q}]}`, payload)
	}))
	defer srv.Close()

	cfg := &ContentConfig{APIBaseURL: srv.URL, ImageModel: "test-image-model"}
	img, err := generateBackground(postContent{Bullet: "headline"}, cfg, "test-key")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 96 {
		t.Errorf("image = %dx%d, want 64x96", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestGenerateBackground_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	cfg := &ContentConfig{APIBaseURL: srv.URL, ImageModel: "m"}
	if _, err := generateBackground(postContent{}, cfg, "k"); err == nil {
		t.Error("expected error for HTTP 400")
	}
}

func TestGenerateBackground_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	cfg := &ContentConfig{APIBaseURL: srv.URL, ImageModel: "m"}
	if _, err := generateBackground(postContent{}, cfg, "k"); err == nil {
		t.Error("expected error for empty data")
	}
}

func TestGenerateBackground_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"b64_json":"bm90IGFuIGltYWdl"}]}`)
	}))
	defer srv.Close()

	cfg := &ContentConfig{APIBaseURL: srv.URL, ImageModel: "m"}
	if _, err := generateBackground(postContent{}, cfg, "k"); err == nil {
		t.Error("expected error for undecodable image payload")
	}
}

func TestBackgroundPrompt(t *testing.T) {
	c := postContent{Bullet: "bullet", Description: "a market rally"}
	p := backgroundPrompt(c)
	if !strings.Contains(p, "a market rally") {
		t.Errorf("prompt should use the description, got %q", p)
	}

	p = backgroundPrompt(postContent{Bullet: "bullet only"})
	if !strings.Contains(p, "bullet only") {
		t.Errorf("prompt should fall back to the bullet, got %q", p)
	}
}
