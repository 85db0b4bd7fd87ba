// Package shareapp maintains the app layer api for the share domain.
package shareapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/domain/userbus"
	"github.com/panelkit/panelkit/business/sdk/web"
)

type app struct {
	shareBus *sharebus.Core
	userBus  *userbus.Core
}

func newApp(shareBus *sharebus.Core, userBus *userbus.Core) *app {
	return &app{
		shareBus: shareBus,
		userBus:  userBus,
	}
}

// create invites a user to the dashboard loaded by the access guard. The
// invited user must exist inside the same organization; anyone else answers
// not found so user ids cannot be probed across tenants.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewShare
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	ns, err := toBusNewShare(req, dsb.ID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, err := a.userBus.QueryByID(ctx, ns.UserID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return errs.New(errs.NotFound, userbus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "query user: %s", err)
	}

	if usr.OrgID != dsb.OrgID {
		return errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	shr, err := a.shareBus.Create(ctx, ns)
	if err != nil {
		if errors.Is(err, sharebus.ErrUniqueShare) {
			return errs.New(errs.AlreadyExists, err)
		}
		if errors.Is(err, sharebus.ErrInvalidAccess) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "create share: %s", err)
	}

	return toAppShare(shr)
}

// query returns all share invites for the dashboard loaded by the access
// guard, revoked ones included.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	shrs, err := a.shareBus.QueryByDashboard(ctx, dsb.ID)
	if err != nil {
		return errs.Errorf(errs.Internal, "query shares: %s", err)
	}

	return toAppShares(shrs)
}

// update modifies a share invite on the dashboard loaded by the access guard.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateShare
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	shr, err := a.shareForDashboard(ctx, r)
	if err != nil {
		return err.(web.Encoder)
	}

	us, err := toBusUpdateShare(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updated, err := a.shareBus.Update(ctx, shr, us)
	if err != nil {
		if errors.Is(err, sharebus.ErrInvalidAccess) {
			return errs.New(errs.InvalidArgument, err)
		}
		return errs.Errorf(errs.Internal, "update share: %s", err)
	}

	return toAppShare(updated)
}

// revoke ends a share invite. The row stays behind for audit history and
// future resolutions treat the user as never invited.
func (a *app) revoke(ctx context.Context, r *http.Request) web.Encoder {
	shr, err := a.shareForDashboard(ctx, r)
	if err != nil {
		return err.(web.Encoder)
	}

	if _, err := a.shareBus.Revoke(ctx, shr); err != nil {
		return errs.Errorf(errs.Internal, "revoke share: %s", err)
	}

	return nil
}

// shareForDashboard loads the share named in the route and confirms it
// belongs to the dashboard the access guard authorized.
func (a *app) shareForDashboard(ctx context.Context, r *http.Request) (sharebus.Share, error) {
	dsb, err := mid.GetDashboard(ctx)
	if err != nil {
		return sharebus.Share{}, errs.New(errs.Internal, err)
	}

	shareID, err := uuid.Parse(web.Param(r, "share_id"))
	if err != nil {
		return sharebus.Share{}, errs.New(errs.NotFound, sharebus.ErrNotFound)
	}

	shr, err := a.shareBus.QueryByID(ctx, shareID)
	if err != nil {
		if errors.Is(err, sharebus.ErrNotFound) {
			return sharebus.Share{}, errs.New(errs.NotFound, sharebus.ErrNotFound)
		}
		return sharebus.Share{}, errs.Errorf(errs.Internal, "query share: %s", err)
	}

	if shr.DashboardID != dsb.ID {
		return sharebus.Share{}, errs.New(errs.NotFound, sharebus.ErrNotFound)
	}

	return shr, nil
}
