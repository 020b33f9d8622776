package cli

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/voyalab/backplane/internal/backend"
	"github.com/voyalab/backplane/internal/logging"
	"github.com/voyalab/backplane/internal/proxy/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the icon proxy and health endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := backend.NewClient(cfg.BackendBaseURL, cfg.BackendAPIKey)

		icons, err := handlers.KnownIcons(cfg.IconManifest)
		if err != nil {
			return err
		}
		logging.Infof("pre-resolving %d icon names", len(icons))
		for _, name := range icons {
			logging.Debugf("  icon: %s", name)
		}

		r := chi.NewRouter()
		r.Use(chimiddleware.Logger)
		r.Use(chimiddleware.Recoverer)

		r.Get("/healthz", handlers.HealthHandler())
		r.Get("/api/tools/icons/{iconName}", handlers.IconHandler(client))

		addr := cfg.ListenAddr()
		logging.Infof("backplane serving on http://%s (backend %s)", addr, cfg.BackendBaseURL)
		return http.ListenAndServe(addr, r)
	},
}
