// Package widgetapp maintains the app layer api for the widget domain.
package widgetapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/sdk/web"
)

type app struct {
	widgetBus *widgetbus.Core
}

func newApp(widgetBus *widgetbus.Core) *app {
	return &app{
		widgetBus: widgetBus,
	}
}

// create adds a widget to the dashboard loaded by the access guard.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewWidget
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	nw, err := toBusNewWidget(req, dsb.ID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	wdg, err := a.widgetBus.Create(ctx, nw)
	if err != nil {
		if errors.Is(err, widgetbus.ErrInvalidLayout) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "create widget: %s", err)
	}

	return toAppWidget(wdg)
}

// query returns all widgets of the dashboard loaded by the access guard.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	wdgs, err := a.widgetBus.QueryByDashboard(ctx, dsb.ID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query widgets: %s", err)
	}

	return toAppWidgets(wdgs)
}

// update modifies a widget on the dashboard loaded by the access guard.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateWidget
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	wdg, err := a.widgetForDashboard(ctx, r)
	if err != nil {
		return err.(web.Encoder)
	}

	updated, err := a.widgetBus.Update(ctx, wdg, toBusUpdateWidget(req, wdg))
	if err != nil {
		if errors.Is(err, widgetbus.ErrInvalidLayout) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "update widget: %s", err)
	}

	return toAppWidget(updated)
}

// delete removes a widget from the dashboard loaded by the access guard.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	wdg, err := a.widgetForDashboard(ctx, r)
	if err != nil {
		return err.(web.Encoder)
	}

	if err := a.widgetBus.Delete(ctx, wdg); err != nil {
		return errs.Errorf(errs.Internal, "delete widget: %s", err)
	}

	return nil
}

// widgetForDashboard loads the widget named in the route and confirms it
// belongs to the dashboard the access guard authorized. A widget on a
// different dashboard answers not found.
func (a *app) widgetForDashboard(ctx context.Context, r *http.Request) (widgetbus.Widget, error) {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return widgetbus.Widget{}, errs.New(errs.Internal, err)
	}

	widgetID, err := uuid.Parse(web.Param(r, "widget_id"))
	if err != nil {
		return widgetbus.Widget{}, errs.New(errs.NotFound, widgetbus.ErrNotFound)
	}

	wdg, err := a.widgetBus.QueryByID(ctx, widgetID)
	if err != nil {
		if errors.Is(err, widgetbus.ErrNotFound) {
			return widgetbus.Widget{}, errs.New(errs.NotFound, widgetbus.ErrNotFound)
		}
		return widgetbus.Widget{}, errs.Errorf(errs.Internal, "query widget: %s", err)
	}

	if wdg.DashboardID != dsb.ID {
		return widgetbus.Widget{}, errs.New(errs.NotFound, widgetbus.ErrNotFound)
	}

	return wdg, nil
}
