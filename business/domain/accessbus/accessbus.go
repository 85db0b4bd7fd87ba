// Package accessbus resolves what an authenticated user may do with a
// dashboard. Resolution walks a fixed ordered chain and stops at the first
// rule that grants: platform admin, dashboard owner, workspace owner, then
// the user's active share invite. When nothing grants, the outcome is NONE
// with a stable reason.
package accessbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/domain/workspacebus"
	"github.com/panelkit/panelkit/business/sdk/delegate"
	"github.com/panelkit/panelkit/business/types/accesslevel"
	"github.com/panelkit/panelkit/business/types/role"
	"github.com/panelkit/panelkit/foundation/logger"
	"github.com/panelkit/panelkit/foundation/otel"
)

// Set of error variables for access operations.
var (
	ErrForbidden = errors.New("access denied")
)

// ShareReader defines the share lookup required for resolution.
type ShareReader interface {
	QueryActiveByDashboardAndUser(ctx context.Context, dashboardID uuid.UUID, userID uuid.UUID) (sharebus.Share, error)
}

// MembershipReader defines the workspace membership lookup required for
// resolution.
type MembershipReader interface {
	QueryMembership(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (workspacebus.Membership, error)
}

// Core manages the set of APIs for access resolution.
type Core struct {
	log      *logger.Logger
	shares   ShareReader
	members  MembershipReader
	delegate *delegate.Delegate
	now      func() time.Time
}

// NewCore constructs a core for access resolution.
func NewCore(log *logger.Logger, shares ShareReader, members MembershipReader, delegate *delegate.Delegate) *Core {
	return &Core{
		log:      log,
		shares:   shares,
		members:  members,
		delegate: delegate,
		now:      time.Now,
	}
}

// Resolve determines the caller's effective access to the dashboard. The
// rules are evaluated in order and the first grant wins; any lookup failure
// resolves to no access. The outcome is emitted as an audit event.
func (c *Core) Resolve(ctx context.Context, idn Identity, dsb dashboardbus.Dashboard) (ResolvedAccess, error) {
	ctx, span := otel.AddSpan(ctx, "business.accessbus.resolve")
	defer span.End()

	ra, err := c.resolve(ctx, idn, dsb)
	if err != nil {
		return ResolvedAccess{}, err
	}

	c.emitResolved(ctx, idn, dsb, ra)

	return ra, nil
}

func (c *Core) resolve(ctx context.Context, idn Identity, dsb dashboardbus.Dashboard) (ResolvedAccess, error) {
	if idn.Role.Equal(role.Admin) {
		return ResolvedAccess{Level: accesslevel.Owner, ExportAllowed: true}, nil
	}

	if dsb.OwnerID == idn.UserID {
		return ResolvedAccess{Level: accesslevel.Owner, ExportAllowed: true}, nil
	}

	if dsb.WorkspaceID != nil {
		mbr, err := c.members.QueryMembership(ctx, *dsb.WorkspaceID, idn.UserID)
		switch {
		case err == nil:
			if mbr.Role.Equal(workspacebus.MemberRoleOwner) {
				return ResolvedAccess{Level: accesslevel.Owner, ExportAllowed: true}, nil
			}

		case errors.Is(err, workspacebus.ErrNotMember):
			// Not being a member just moves resolution to the next rule.

		default:
			return ResolvedAccess{}, fmt.Errorf("querymembership: %w", err)
		}
	}

	shr, err := c.shares.QueryActiveByDashboardAndUser(ctx, dsb.ID, idn.UserID)
	if err != nil {
		if errors.Is(err, sharebus.ErrNotFound) {
			return ResolvedAccess{Level: accesslevel.None, Reason: ReasonNotInvited}, nil
		}
		return ResolvedAccess{}, fmt.Errorf("queryshare: %w", err)
	}

	if shr.Expired(c.now()) {
		return ResolvedAccess{Level: accesslevel.None, Reason: ReasonShareExpired}, nil
	}

	level := shr.Access
	if idn.Role.Equal(role.Viewer) {
		level = level.Cap(accesslevel.View)
	}

	return ResolvedAccess{Level: level, ExportAllowed: shr.ExportAllowed}, nil
}

// RequireMin returns ErrForbidden unless the resolved access satisfies the
// specified minimum level.
func RequireMin(ra ResolvedAccess, minimum accesslevel.Level) error {
	if !ra.Level.Meets(minimum) {
		if ra.Reason != "" {
			return fmt.Errorf("level %s below %s: %s: %w", ra.Level, minimum, ra.Reason, ErrForbidden)
		}
		return fmt.Errorf("level %s below %s: %w", ra.Level, minimum, ErrForbidden)
	}

	return nil
}

// RequireExport returns ErrForbidden unless the resolved access permits
// exporting. The export flag is independent of the access level.
func RequireExport(ra ResolvedAccess) error {
	if !ra.ExportAllowed {
		return fmt.Errorf("export not allowed: %w", ErrForbidden)
	}

	return nil
}

// emitResolved hands the resolution outcome to whoever registered for audit
// events. Failures inside the delegate are logged there, never propagated.
func (c *Core) emitResolved(ctx context.Context, idn Identity, dsb dashboardbus.Dashboard, ra ResolvedAccess) {
	if c.delegate == nil {
		return
	}

	params := struct {
		UserID      uuid.UUID `json:"user_id"`
		DashboardID uuid.UUID `json:"dashboard_id"`
		Level       string    `json:"level"`
		Reason      string    `json:"reason,omitempty"`
	}{
		UserID:      idn.UserID,
		DashboardID: dsb.ID,
		Level:       ra.Level.String(),
		Reason:      ra.Reason,
	}

	raw, err := json.Marshal(params)
	if err != nil {
		c.log.Error(ctx, "accessbus: marshal audit params", "msg", err)
		return
	}

	c.delegate.Call(ctx, delegate.Data{
		Domain:    DomainName,
		Action:    ActionResolved,
		RawParams: raw,
	})
}
