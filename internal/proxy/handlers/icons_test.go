package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/voyalab/backplane/internal/backend"
)

func TestContentTypeForIcon(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"tool.svg", "image/svg+xml"},
		{"tool.SVG", "image/svg+xml"},
		{"tool.png", "image/png"},
		{"tool.jpg", "image/jpeg"},
		{"tool.jpeg", "image/jpeg"},
		{"tool.webp", "image/png"},
		{"tool", "image/png"},
		{"", "image/png"},
	}
	for _, tc := range tests {
		if got := ContentTypeForIcon(tc.name); got != tc.want {
			t.Errorf("ContentTypeForIcon(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func newIconRouter(t *testing.T, upstream http.HandlerFunc) *chi.Mux {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	client := backend.NewClient(srv.URL, "icon-key")

	r := chi.NewRouter()
	r.Get("/api/tools/icons/{iconName}", IconHandler(client))
	return r
}

func TestIconProxySuccess(t *testing.T) {
	router := newIconRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tools/icons/web-search.svg" {
			t.Errorf("upstream path = %q", r.URL.Path)
		}
		w.Write([]byte("<svg>icon</svg>"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/icons/web-search.svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=86400" {
		t.Errorf("Cache-Control = %q, want 24h directive", got)
	}
	if rec.Body.String() != "<svg>icon</svg>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestIconProxyDefaultContentType(t *testing.T) {
	router := newIconRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x89, 0x50})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/icons/noext", nil))
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png default", got)
	}
}

func TestIconProxyUpstreamNotFound(t *testing.T) {
	router := newIconRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/icons/gone.png", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["error"] != "Icon not found" {
		t.Errorf(`body = %v, want {"error": "Icon not found"}`, body)
	}
}

func TestIconProxyUpstreamUnreachable(t *testing.T) {
	// Point the client at a closed port to force a transport error.
	client := backend.NewClient("http://127.0.0.1:1", "icon-key")
	r := chi.NewRouter()
	r.Get("/api/tools/icons/{iconName}", IconHandler(client))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tools/icons/tool.png", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["error"] != "Failed to load icon" {
		t.Errorf("body = %v", body)
	}
	if strings.Contains(rec.Body.String(), "127.0.0.1") {
		t.Error("internal detail must not leak to the client")
	}
}

func TestKnownIconsDefaults(t *testing.T) {
	icons, err := KnownIcons("")
	if err != nil {
		t.Fatalf("KnownIcons error: %v", err)
	}
	if len(icons) == 0 {
		t.Fatal("default icon set must not be empty")
	}
	found := false
	for _, name := range icons {
		if name == "web-search.svg" {
			found = true
		}
	}
	if !found {
		t.Errorf("defaults = %v, expected web-search.svg", icons)
	}
}

func TestKnownIconsManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icons.yaml")
	if err := os.WriteFile(path, []byte("icons:\n  - a.svg\n  - b.png\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	icons, err := KnownIcons(path)
	if err != nil {
		t.Fatalf("KnownIcons error: %v", err)
	}
	if len(icons) != 2 || icons[0] != "a.svg" || icons[1] != "b.png" {
		t.Errorf("icons = %v", icons)
	}
}
