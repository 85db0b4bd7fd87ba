package mid

import (
	"context"
	"net/http"

	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/sdk/rbac"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/business/types/role"
)

// Authorize runs the coarse role policy check for a resource type and
// action. It answers whether the caller's organization role may attempt the
// operation at all; the per-dashboard resolution happens afterwards in
// DashboardAccess.
func Authorize(enforcer *rbac.Enforcer, resource string, action string) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			claims := GetClaims(ctx)

			rle, err := role.Parse(claims.Role)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if err := enforcer.Check(rle, resource, action); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}
