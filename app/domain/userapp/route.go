package userapp

import (
	"net/http"

	"github.com/panelkit/panelkit/app/sdk/auth"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/domain/userbus"
	"github.com/panelkit/panelkit/business/sdk/rbac"
	"github.com/panelkit/panelkit/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	RBAC    *rbac.Enforcer
	UserBus *userbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	canManage := mid.Authorize(cfg.RBAC, rbac.ResourceUser, rbac.ActionManage)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, canManage)
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, authen, canManage)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}/role", api.updateRole, authen, canManage)

	app.HandlerFunc(http.MethodGet, version, "/me", api.queryByID, authen)
	app.HandlerFunc(http.MethodPut, version, "/me", api.update, authen)
	app.HandlerFunc(http.MethodDelete, version, "/me", api.delete, authen)
}
