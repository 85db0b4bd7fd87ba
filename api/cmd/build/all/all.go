// Package all binds every route group into the service instance.
package all

import (
	"github.com/panelkit/panelkit/app/domain/authapp"
	"github.com/panelkit/panelkit/app/domain/checkapp"
	"github.com/panelkit/panelkit/app/domain/dashboardapp"
	"github.com/panelkit/panelkit/app/domain/shareapp"
	"github.com/panelkit/panelkit/app/domain/userapp"
	"github.com/panelkit/panelkit/app/domain/widgetapp"
	"github.com/panelkit/panelkit/app/sdk/mux"
	"github.com/panelkit/panelkit/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      cfg.Auth,
		ActiveKID: cfg.ActiveKID,
	})

	userapp.Routes(app, userapp.Config{
		Auth:    cfg.Auth,
		RBAC:    cfg.RBAC,
		UserBus: cfg.BusConfig.UserBus,
	})

	dashboardapp.Routes(app, dashboardapp.Config{
		Auth:         cfg.Auth,
		RBAC:         cfg.RBAC,
		DashboardBus: cfg.BusConfig.DashboardBus,
		WidgetBus:    cfg.BusConfig.WidgetBus,
		AccessBus:    cfg.BusConfig.AccessBus,
	})

	widgetapp.Routes(app, widgetapp.Config{
		Auth:         cfg.Auth,
		RBAC:         cfg.RBAC,
		DashboardBus: cfg.BusConfig.DashboardBus,
		WidgetBus:    cfg.BusConfig.WidgetBus,
		AccessBus:    cfg.BusConfig.AccessBus,
	})

	shareapp.Routes(app, shareapp.Config{
		Auth:         cfg.Auth,
		RBAC:         cfg.RBAC,
		DashboardBus: cfg.BusConfig.DashboardBus,
		ShareBus:     cfg.BusConfig.ShareBus,
		UserBus:      cfg.BusConfig.UserBus,
		AccessBus:    cfg.BusConfig.AccessBus,
	})
}
