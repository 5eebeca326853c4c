package main

import (
	"net/http"

	"github.com/caresign/caresign/internal/assist"
	"github.com/caresign/caresign/internal/documents"
	"github.com/caresign/caresign/internal/merge"
	"github.com/caresign/caresign/internal/overlay"
	"github.com/caresign/caresign/internal/signature"
	"github.com/caresign/caresign/internal/verify"
	"github.com/caresign/caresign/pkg/handlers"
	"github.com/caresign/caresign/pkg/routes"
)

func (app *Application) registerRoutes(router routes.System) {
	maxUpload := app.cfg.Storage.MaxUploadSizeBytes()
	redirectDelay := app.cfg.Signing.RedirectDelayDuration()

	router.RegisterGroup(verify.NewHandler(app.verify, redirectDelay, app.logger).Group())
	router.RegisterGroup(documents.NewHandler(app.docs, app.sessions, maxUpload, app.logger).Group())
	router.RegisterGroup(overlay.NewHandler(app.overlay, app.sessions, app.logger).Group())
	router.RegisterGroup(signature.NewHandler(app.blobs, app.sessions, app.logger).Group())
	router.RegisterGroup(merge.NewHandler(app.merge, app.sessions, app.logger).Group())
	router.RegisterGroup(assist.NewHandler(app.assist, app.sessions, app.logger).Group())

	router.RegisterRoute(routes.Route{
		Method: http.MethodGet, Pattern: "/healthz", Handler: app.healthz,
	})
	router.RegisterRoute(routes.Route{
		Method: http.MethodGet, Pattern: "/readyz", Handler: app.readyz,
	})
}

func (app *Application) healthz(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readyz reports ready only when the database answers.
func (app *Application) readyz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		handlers.RespondError(w, app.logger, http.StatusServiceUnavailable, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
