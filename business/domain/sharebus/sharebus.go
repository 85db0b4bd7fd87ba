// Package sharebus provides business access to dashboard share invites.
package sharebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/business/types/accesslevel"
	"github.com/panelkit/panelkit/foundation/otel"
)

// Set of error variables for share operations.
var (
	ErrNotFound      = errors.New("share not found")
	ErrUniqueShare   = errors.New("an active share already exists for this user")
	ErrInvalidAccess = errors.New("share access must be view or edit")
)

// Storer defines the behavior required by the sharebus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, shr Share) error
	Update(ctx context.Context, shr Share) error
	QueryByID(ctx context.Context, shareID uuid.UUID) (Share, error)
	QueryActiveByDashboardAndUser(ctx context.Context, dashboardID uuid.UUID, userID uuid.UUID) (Share, error)
	QueryByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]Share, error)
}

// Core manages the set of APIs for share access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for share api access.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create adds a new share to the system. At most one active share may exist
// per (dashboard, user) pair; the database enforces this with a partial
// unique index over non-revoked rows.
func (c *Core) Create(ctx context.Context, ns NewShare) (Share, error) {
	ctx, span := otel.AddSpan(ctx, "business.sharebus.create")
	defer span.End()

	if !ns.Access.Equal(accesslevel.View) && !ns.Access.Equal(accesslevel.Edit) {
		return Share{}, ErrInvalidAccess
	}

	now := time.Now()

	shr := Share{
		ID:            uuid.New(),
		DashboardID:   ns.DashboardID,
		UserID:        ns.UserID,
		Access:        ns.Access,
		ExportAllowed: ns.ExportAllowed,
		ExpiresAt:     ns.ExpiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storer.Create(ctx, shr); err != nil {
		return Share{}, fmt.Errorf("create: %w", err)
	}

	return shr, nil
}

// Update modifies the access level, export flag or expiry of a share.
func (c *Core) Update(ctx context.Context, shr Share, us UpdateShare) (Share, error) {
	ctx, span := otel.AddSpan(ctx, "business.sharebus.update")
	defer span.End()

	if us.Access != nil {
		if !us.Access.Equal(accesslevel.View) && !us.Access.Equal(accesslevel.Edit) {
			return Share{}, ErrInvalidAccess
		}
		shr.Access = *us.Access
	}

	if us.ExportAllowed != nil {
		shr.ExportAllowed = *us.ExportAllowed
	}

	if us.ExpiresAt != nil {
		shr.ExpiresAt = us.ExpiresAt
	}

	shr.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, shr); err != nil {
		return Share{}, fmt.Errorf("update: %w", err)
	}

	return shr, nil
}

// Revoke soft-revokes the share with a timestamp. The record is never
// deleted so the grant history stays auditable.
func (c *Core) Revoke(ctx context.Context, shr Share) (Share, error) {
	ctx, span := otel.AddSpan(ctx, "business.sharebus.revoke")
	defer span.End()

	now := time.Now()
	shr.RevokedAt = &now
	shr.UpdatedAt = now

	if err := c.storer.Update(ctx, shr); err != nil {
		return Share{}, fmt.Errorf("revoke: %w", err)
	}

	return shr, nil
}

// QueryByID finds the share by the specified ID.
func (c *Core) QueryByID(ctx context.Context, shareID uuid.UUID) (Share, error) {
	ctx, span := otel.AddSpan(ctx, "business.sharebus.queryByID")
	defer span.End()

	shr, err := c.storer.QueryByID(ctx, shareID)
	if err != nil {
		return Share{}, fmt.Errorf("query: shareID[%s]: %w", shareID, err)
	}

	return shr, nil
}

// QueryActiveByDashboardAndUser finds the single non-revoked share for the
// (dashboard, user) pair. Expiry is not judged here; the access resolver
// distinguishes an expired share from a missing one.
func (c *Core) QueryActiveByDashboardAndUser(ctx context.Context, dashboardID uuid.UUID, userID uuid.UUID) (Share, error) {
	ctx, span := otel.AddSpan(ctx, "business.sharebus.queryActiveByDashboardAndUser")
	defer span.End()

	shr, err := c.storer.QueryActiveByDashboardAndUser(ctx, dashboardID, userID)
	if err != nil {
		return Share{}, fmt.Errorf("query: dashboardID[%s] userID[%s]: %w", dashboardID, userID, err)
	}

	return shr, nil
}

// QueryByDashboard retrieves all shares for a dashboard, revoked ones
// included.
func (c *Core) QueryByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]Share, error) {
	ctx, span := otel.AddSpan(ctx, "business.sharebus.queryByDashboard")
	defer span.End()

	shrs, err := c.storer.QueryByDashboard(ctx, dashboardID)
	if err != nil {
		return nil, fmt.Errorf("query: dashboardID[%s]: %w", dashboardID, err)
	}

	return shrs, nil
}
