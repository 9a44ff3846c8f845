package web

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gap := 4
	reg := config.NewRegistry(map[string]config.VariantConfig{
		"mint": {Base: config.VariantBlue, Gap: &gap, Colors: "#a7f3d0,#34d399"},
	})
	logger := log.New(io.Discard)
	srv := httptest.NewServer(NewRouter(NewCardHandler(reg, false, logger), logger))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
}

func TestVariants(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv, "/variants")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var got []variantJSON
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	names := make([]string, len(got))
	for i, v := range got {
		names[i] = v.Name
	}
	want := "default,blue,yellow,pink,mint"
	if strings.Join(names, ",") != want {
		t.Errorf("variants = %v, want %s", names, want)
	}
	mint := got[4]
	if mint.Gap != 4 || mint.Speed != 25 || mint.BuiltIn {
		t.Errorf("mint = %+v, want gap 4 speed 25 from blue", mint)
	}
}

func TestCardRenders(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name        string
		path        string
		contentType string
	}{
		{"text", "/cards/blue.txt?width=20&height=4&frames=30&seed=1&label=Hi", "text/plain; charset=utf-8"},
		{"png", "/cards/pink.png?width=10&height=3&scale=2&seed=2", "image/png"},
		{"custom variant", "/cards/mint.txt?seed=3", "text/plain; charset=utf-8"},
		{"overrides", "/cards/default.txt?gap=2&speed=90&colors=%23ff0000&direction=out&seed=4", "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("content type = %q, want %q", ct, tt.contentType)
			}
			if resp.Header.Get("X-Pixelcard-Frames") == "" {
				t.Error("missing frame count header")
			}
			if len(body) == 0 {
				t.Error("empty body")
			}
		})
	}
}

func TestCardTextLabel(t *testing.T) {
	srv := newTestServer(t)
	_, body := get(t, srv, "/cards/yellow.txt?width=20&height=3&seed=9&label=Venus")
	if !strings.Contains(string(body), "Venus") {
		t.Errorf("text render missing label: %q", body)
	}
}

func TestCardPNGSize(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/cards/blue.png?width=8&height=2&scale=3&seed=1")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 12 {
		t.Errorf("png = %dx%d, want 24x12", b.Dx(), b.Dy())
	}
}

func TestCardErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/cards/nope.txt", http.StatusNotFound},
		{"/cards/blue.gif", http.StatusNotFound},
		{"/cards/blue", http.StatusNotFound},
		{"/cards/blue.txt?width=abc", http.StatusBadRequest},
		{"/cards/blue.txt?width=0", http.StatusBadRequest},
		{"/cards/blue.txt?height=100000", http.StatusBadRequest},
		{"/cards/blue.txt?frames=-1", http.StatusBadRequest},
		{"/cards/blue.txt?gap=0", http.StatusBadRequest},
		{"/cards/blue.txt?speed=101", http.StatusBadRequest},
		{"/cards/blue.txt?colors=nothex", http.StatusBadRequest},
		{"/cards/blue.txt?seed=-3", http.StatusBadRequest},
		{"/cards/blue.txt?direction=up", http.StatusBadRequest},
		{"/cards/blue.txt?reduced_motion=maybe", http.StatusBadRequest},
		{"/cards/blue.png?scale=99", http.StatusBadRequest},
		{"/cards/default.txt?width=400&height=400&gap=1&frames=3000", http.StatusBadRequest},
		{"/cards/default.png?width=400&height=400&gap=1&scale=16&frames=3000", http.StatusBadRequest},
		{"/cards/blue.png?width=400&height=200&scale=16", http.StatusBadRequest},
		{"/cards/blue.txt?width=400&height=200&gap=2&frames=2000&direction=out", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
		})
	}
}
