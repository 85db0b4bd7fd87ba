package checkapp

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Build string
	Log   *logger.Logger
	DB    *sqlx.DB
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Build, cfg.Log, cfg.DB)

	app.HandlerFunc(http.MethodGet, version, "/liveness", api.liveness)
	app.HandlerFunc(http.MethodGet, version, "/readiness", api.readiness)
}
