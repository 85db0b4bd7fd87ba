package authapp

import (
	"net/http"

	"github.com/panelkit/panelkit/app/sdk/auth"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	ActiveKID string
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.Auth, cfg.ActiveKID)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodGet, version, "/auth/token", api.token, authen)
}
