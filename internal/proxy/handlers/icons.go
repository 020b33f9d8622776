package handlers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"

	"github.com/voyalab/backplane/internal/backend"
	"github.com/voyalab/backplane/internal/logging"
)

// iconCacheControl keeps icons cached client-side for 24 hours.
const iconCacheControl = "public, max-age=86400"

// defaultIcons is the compiled-in set of icon filenames the route can
// pre-resolve when no manifest file is configured.
var defaultIcons = []string{
	"web-search.svg",
	"calculator.svg",
	"code-runner.svg",
	"knowledge.svg",
	"speech.svg",
	"default.png",
}

// IconHandler proxies a tool icon request to the backend. Non-success
// upstream responses become a 404 with a generic body; anything else
// becomes a 500. The upstream detail is only logged.
func IconHandler(client *backend.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		iconName := chi.URLParam(r, "iconName")
		ctx := logging.WithRequestID(r.Context(), GetOrGenerateRequestID(r))

		data, err := client.FetchIcon(ctx, iconName)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				logging.Warnf("icon %s not found upstream: %v", iconName, err)
				writeJSONError(w, http.StatusNotFound, "Icon not found")
				return
			}
			logging.Errorf("icon %s fetch failed: %v", iconName, err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to load icon")
			return
		}

		w.Header().Set("Content-Type", ContentTypeForIcon(iconName))
		w.Header().Set("Cache-Control", iconCacheControl)
		w.Write(data)
	}
}

// ContentTypeForIcon infers the image content type from the filename
// extension, defaulting to PNG.
func ContentTypeForIcon(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}

// KnownIcons enumerates the finite icon set the route pre-resolves.
// manifestPath optionally points at a YAML file of the form
// {icons: [name, ...]}; when empty or unreadable-as-empty it falls
// back to the compiled-in defaults.
func KnownIcons(manifestPath string) ([]string, error) {
	if manifestPath == "" {
		return append([]string(nil), defaultIcons...), nil
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, err
	}
	var manifest struct {
		Icons []string `yaml:"icons"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}
	if len(manifest.Icons) == 0 {
		return append([]string(nil), defaultIcons...), nil
	}
	return manifest.Icons, nil
}
