package shareapp

import (
	"net/http"

	"github.com/panelkit/panelkit/app/sdk/auth"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/domain/userbus"
	"github.com/panelkit/panelkit/business/sdk/rbac"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/business/types/accesslevel"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	RBAC         *rbac.Enforcer
	DashboardBus *dashboardbus.Core
	ShareBus     *sharebus.Core
	UserBus      *userbus.Core
	AccessBus    *accessbus.Core
}

// Routes adds specific routes for this group. Managing invites takes owner
// access on the dashboard.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	canRead := mid.Authorize(cfg.RBAC, rbac.ResourceShare, rbac.ActionRead)
	canManage := mid.Authorize(cfg.RBAC, rbac.ResourceShare, rbac.ActionManage)

	ownerAccess := mid.DashboardAccess(cfg.DashboardBus, cfg.AccessBus, accesslevel.Owner)

	api := newApp(cfg.ShareBus, cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/dashboards/{dashboard_id}/shares", api.query, authen, canRead, ownerAccess)
	app.HandlerFunc(http.MethodPost, version, "/dashboards/{dashboard_id}/shares", api.create, authen, canManage, ownerAccess)
	app.HandlerFunc(http.MethodPut, version, "/dashboards/{dashboard_id}/shares/{share_id}", api.update, authen, canManage, ownerAccess)
	app.HandlerFunc(http.MethodDelete, version, "/dashboards/{dashboard_id}/shares/{share_id}", api.revoke, authen, canManage, ownerAccess)
}
