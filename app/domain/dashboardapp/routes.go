package dashboardapp

import (
	"net/http"

	"github.com/panelkit/panelkit/app/sdk/auth"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/sdk/rbac"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/business/types/accesslevel"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	RBAC         *rbac.Enforcer
	DashboardBus *dashboardbus.Core
	WidgetBus    *widgetbus.Core
	AccessBus    *accessbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	canRead := mid.Authorize(cfg.RBAC, rbac.ResourceDashboard, rbac.ActionRead)
	canWrite := mid.Authorize(cfg.RBAC, rbac.ResourceDashboard, rbac.ActionWrite)
	canManage := mid.Authorize(cfg.RBAC, rbac.ResourceDashboard, rbac.ActionManage)

	viewAccess := mid.DashboardAccess(cfg.DashboardBus, cfg.AccessBus, accesslevel.View)
	editAccess := mid.DashboardAccess(cfg.DashboardBus, cfg.AccessBus, accesslevel.Edit)
	ownerAccess := mid.DashboardAccess(cfg.DashboardBus, cfg.AccessBus, accesslevel.Owner)

	api := newApp(cfg.DashboardBus, cfg.WidgetBus)

	app.HandlerFunc(http.MethodGet, version, "/dashboards", api.query, authen, canRead)
	app.HandlerFunc(http.MethodPost, version, "/dashboards", api.create, authen, canWrite)
	app.HandlerFunc(http.MethodGet, version, "/dashboards/{dashboard_id}", api.queryByID, authen, canRead, viewAccess)
	app.HandlerFunc(http.MethodPut, version, "/dashboards/{dashboard_id}", api.update, authen, canWrite, editAccess)
	app.HandlerFunc(http.MethodDelete, version, "/dashboards/{dashboard_id}", api.delete, authen, canManage, ownerAccess)

	app.HandlerFunc(http.MethodPost, version, "/dashboards/{dashboard_id}/sharing", api.enableSharing, authen, canManage, ownerAccess)
	app.HandlerFunc(http.MethodDelete, version, "/dashboards/{dashboard_id}/sharing", api.disableSharing, authen, canManage, ownerAccess)

	app.HandlerFunc(http.MethodGet, version, "/dashboards/{dashboard_id}/export", api.export, authen, canRead, viewAccess, mid.ExportAllowed())

	// Anonymous share link. No authentication; the token query parameter is
	// the only credential.
	app.HandlerFunc(http.MethodGet, version, "/public/dashboards/{dashboard_id}", api.public)
}
