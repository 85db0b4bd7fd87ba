// Package dashboardapp maintains the app layer api for the dashboard domain.
package dashboardapp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/app/sdk/query"
	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/sdk/order"
	"github.com/panelkit/panelkit/business/sdk/page"
	"github.com/panelkit/panelkit/business/sdk/web"
)

type app struct {
	dashboardBus *dashboardbus.Core
	widgetBus    *widgetbus.Core
}

func newApp(dashboardBus *dashboardbus.Core, widgetBus *widgetbus.Core) *app {
	return &app{
		dashboardBus: dashboardBus,
		widgetBus:    widgetBus,
	}
}

// create adds a new dashboard owned by the caller.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewDashboard
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	orgID, err := mid.GetOrgID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nd, err := toBusNewDashboard(req, orgID, userID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	dsb, err := a.dashboardBus.Create(ctx, nd)
	if err != nil {
		if errors.Is(err, dashboardbus.ErrMissingWorkspace) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "create dashboard: %s", err)
	}

	return toAppDashboard(dsb)
}

// query returns a paged list of dashboards in the caller's organization.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	orgID, err := mid.GetOrgID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, err := parseFilter(qp)
	if err != nil {
		return err.(*errs.Error)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, dashboardbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	dsbs, err := a.dashboardBus.Query(ctx, orgID, filter, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.dashboardBus.Count(ctx, orgID, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppDashboards(dsbs), total, pg)
}

// queryByID returns the dashboard loaded by the access guard.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppDashboard(dsb)
}

// update modifies the dashboard loaded by the access guard.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateDashboard
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	ud, err := toBusUpdateDashboard(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := a.dashboardBus.Update(ctx, dsb, ud)
	if err != nil {
		if errors.Is(err, dashboardbus.ErrMissingWorkspace) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "update dashboard: %s", err)
	}

	return toAppDashboard(updated)
}

// delete soft-deletes the dashboard loaded by the access guard.
func (a *app) delete(ctx context.Context, r *http.Request) web.Encoder {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	if err := a.dashboardBus.Delete(ctx, dsb); err != nil {
		return errs.Errorf(errs.Internal, "delete dashboard: %s", err)
	}

	return nil
}

// enableSharing mints a fresh share link for the dashboard. The token is
// returned here and never again.
func (a *app) enableSharing(ctx context.Context, r *http.Request) web.Encoder {
	var req EnableSharing
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	sharing, err := toBusSharing(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := a.dashboardBus.EnableSharing(ctx, dsb, sharing)
	if err != nil {
		return errs.Errorf(errs.Internal, "enable sharing: %s", err)
	}

	return toAppSharingResult(updated)
}

// disableSharing revokes the public link for the dashboard.
func (a *app) disableSharing(ctx context.Context, r *http.Request) web.Encoder {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	if _, err := a.dashboardBus.DisableSharing(ctx, dsb); err != nil {
		if errors.Is(err, dashboardbus.ErrSharingNotEnabled) {
			return errs.New(errs.FailedPrecondition, err)
		}
		return errs.Errorf(errs.Internal, "disable sharing: %s", err)
	}

	return nil
}

// export returns the dashboard with its widgets for download. The export
// middleware has already checked the flag.
func (a *app) export(ctx context.Context, r *http.Request) web.Encoder {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	wdgs, err := a.widgetBus.QueryByDashboard(ctx, dsb.ID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query widgets: %s", err)
	}

	return DashboardView{
		Dashboard: toAppDashboard(dsb),
		Widgets:   toAppWidgets(wdgs),
	}
}

// public serves a shared dashboard to an anonymous caller holding the share
// token. Every failure answers identically so the existence of a dashboard
// or the shape of its token is never revealed.
func (a *app) public(ctx context.Context, r *http.Request) web.Encoder {
	id, err := uuid.Parse(web.Param(r, "dashboard_id"))
	if err != nil {
		return errs.New(errs.NotFound, accessbus.ErrBadShareToken)
	}

	dsb, err := a.dashboardBus.QueryByIDAnon(ctx, id)
	if err != nil {
		if errors.Is(err, dashboardbus.ErrNotFound) {
			return errs.New(errs.NotFound, accessbus.ErrBadShareToken)
		}
		return errs.Errorf(errs.Internal, "query dashboard: %s", err)
	}

	token := r.URL.Query().Get("token")
	if err := accessbus.VerifyShareToken(dsb, token, time.Now()); err != nil {
		return errs.New(errs.NotFound, accessbus.ErrBadShareToken)
	}

	wdgs, err := a.widgetBus.QueryByDashboard(ctx, dsb.ID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query widgets: %s", err)
	}

	return DashboardView{
		Dashboard: toAppDashboard(dsb),
		Widgets:   toAppWidgets(wdgs),
	}
}
