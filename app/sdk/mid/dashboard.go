package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/business/types/accesslevel"
	"github.com/panelkit/panelkit/business/types/role"
)

// DashboardAccess loads the dashboard named in the route, resolves the
// caller's access to it and enforces the specified minimum level. On success
// the dashboard and the resolved access are placed in the context.
//
// A dashboard in another organization, a soft-deleted one and a malformed id
// all answer not found; the existence of a dashboard is never confirmed to a
// caller who cannot reach it. A caller with no access gets permission denied
// carrying the resolution reason.
func DashboardAccess(dashBus *dashboardbus.Core, accessBus *accessbus.Core, minimum accesslevel.Level) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			id, err := uuid.Parse(web.Param(r, "dashboard_id"))
			if err != nil {
				return errs.New(errs.NotFound, dashboardbus.ErrNotFound)
			}

			userID, err := GetUserID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			orgID, err := GetOrgID(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			rle, err := role.Parse(GetClaims(ctx).Role)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			dsb, err := dashBus.QueryByID(ctx, orgID, id)
			if err != nil {
				if errors.Is(err, dashboardbus.ErrNotFound) {
					return errs.New(errs.NotFound, dashboardbus.ErrNotFound)
				}
				return errs.Newf(errs.Internal, "querybyid: dashboardID[%s]: %s", id, err)
			}

			ra, err := accessBus.Resolve(ctx, accessbus.Identity{UserID: userID, Role: rle}, dsb)
			if err != nil {
				return errs.Newf(errs.Internal, "resolve: dashboardID[%s]: %s", id, err)
			}

			if !ra.Granted() {
				return errs.NewWithReason(errs.PermissionDenied, ra.Reason, accessbus.ErrForbidden)
			}

			if err := accessbus.RequireMin(ra, minimum); err != nil {
				return errs.NewWithReason(errs.PermissionDenied, ra.Reason, err)
			}

			ctx = setDashboard(ctx, dsb)
			ctx = setAccess(ctx, ra)

			return next(ctx, r)
		}

		return h
	}

	return m
}

// ExportAllowed enforces the export flag on the resolved access. It must run
// after DashboardAccess. Export permission is independent of the access
// level; an editor without the flag still cannot export.
func ExportAllowed() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			if err := accessbus.RequireExport(GetAccess(ctx)); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
