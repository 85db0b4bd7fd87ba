package widgetapp

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
	canRead := mid.Authorize(cfg.RBAC, rbac.ResourceWidget, rbac.ActionRead)
	canWrite := mid.Authorize(cfg.RBAC, rbac.ResourceWidget, rbac.ActionWrite)

	viewAccess := mid.DashboardAccess(cfg.DashboardBus, cfg.AccessBus, accesslevel.View)
	editAccess := mid.DashboardAccess(cfg.DashboardBus, cfg.AccessBus, accesslevel.Edit)

	api := newApp(cfg.WidgetBus)

	app.HandlerFunc(http.MethodGet, version, "/dashboards/{dashboard_id}/widgets", api.query, authen, canRead, viewAccess)
	app.HandlerFunc(http.MethodPost, version, "/dashboards/{dashboard_id}/widgets", api.create, authen, canWrite, editAccess)
	app.HandlerFunc(http.MethodPut, version, "/dashboards/{dashboard_id}/widgets/{widget_id}", api.update, authen, canWrite, editAccess)
	app.HandlerFunc(http.MethodDelete, version, "/dashboards/{dashboard_id}/widgets/{widget_id}", api.delete, authen, canWrite, editAccess)
}
