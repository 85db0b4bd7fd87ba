// Package dashboardbus provides business access to dashboard domain.
package dashboardbus

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/sdk/order"
	"github.com/panelkit/panelkit/business/sdk/page"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/business/types/visibility"
	"github.com/panelkit/panelkit/foundation/otel"
)

// Set of error variables for dashboard operations.
var (
	ErrNotFound          = errors.New("dashboard not found")
	ErrMissingWorkspace  = errors.New("workspace visibility requires a workspace id")
	ErrSharingNotEnabled = errors.New("sharing is not enabled")
)

// Storer defines the behavior required by the dashboardbus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, dsb Dashboard) error
	Update(ctx context.Context, dsb Dashboard) error
	QueryByID(ctx context.Context, orgID uuid.UUID, dashboardID uuid.UUID) (Dashboard, error)
	QueryByIDAnon(ctx context.Context, dashboardID uuid.UUID) (Dashboard, error)
	Query(ctx context.Context, orgID uuid.UUID, filter QueryFilter, orderBy order.By, page page.Page) ([]Dashboard, error)
	Count(ctx context.Context, orgID uuid.UUID, filter QueryFilter) (int, error)
}

// Core manages the set of APIs for dashboard access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for dashboard api access.
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

// Create adds a new dashboard to the system.
func (c *Core) Create(ctx context.Context, nd NewDashboard) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.create")
	defer span.End()

	if nd.Visibility.Equal(visibility.Workspace) && nd.WorkspaceID == nil {
		return Dashboard{}, ErrMissingWorkspace
	}

	now := time.Now()

	dsb := Dashboard{
		ID:          uuid.New(),
		OrgID:       nd.OrgID,
		OwnerID:     nd.OwnerID,
		WorkspaceID: nd.WorkspaceID,
		Name:        nd.Name,
		Visibility:  nd.Visibility,
		Tags:        nd.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, dsb); err != nil {
		return Dashboard{}, fmt.Errorf("create: %w", err)
	}

	return dsb, nil
}

// Update modifies data about a dashboard.
func (c *Core) Update(ctx context.Context, dsb Dashboard, ud UpdateDashboard) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.update")
	defer span.End()

	if ud.Name != nil {
		dsb.Name = *ud.Name
	}

	if ud.Visibility != nil {
		if ud.Visibility.Equal(visibility.Workspace) && dsb.WorkspaceID == nil {
			return Dashboard{}, ErrMissingWorkspace
		}
		dsb.Visibility = *ud.Visibility
	}

	if ud.Tags != nil {
		dsb.Tags = *ud.Tags
	}

	dsb.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, dsb); err != nil {
		return Dashboard{}, fmt.Errorf("update: %w", err)
	}

	return dsb, nil
}

// Delete soft-deletes the specified dashboard. The record stays in the
// database for audit history.
func (c *Core) Delete(ctx context.Context, dsb Dashboard) error {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.delete")
	defer span.End()

	dsb.Deleted = true
	dsb.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, dsb); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// EnableSharing mints a fresh share token and enables the public link. Any
// previously issued token stops working because the stored token is replaced.
func (c *Core) EnableSharing(ctx context.Context, dsb Dashboard, s Sharing) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.enableSharing")
	defer span.End()

	token, err := generateShareToken()
	if err != nil {
		return Dashboard{}, fmt.Errorf("generate token: %w", err)
	}

	dsb.ShareToken = &token
	dsb.ShareEnabled = true
	dsb.ShareExpiresAt = s.ExpiresAt
	dsb.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, dsb); err != nil {
		return Dashboard{}, fmt.Errorf("update: %w", err)
	}

	return dsb, nil
}

// DisableSharing revokes the public link. The token is cleared so a re-enable
// always issues a new secret.
func (c *Core) DisableSharing(ctx context.Context, dsb Dashboard) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.disableSharing")
	defer span.End()

	if !dsb.ShareEnabled && dsb.ShareToken == nil {
		return dsb, ErrSharingNotEnabled
	}

	dsb.ShareToken = nil
	dsb.ShareEnabled = false
	dsb.ShareExpiresAt = nil
	dsb.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, dsb); err != nil {
		return Dashboard{}, fmt.Errorf("update: %w", err)
	}

	return dsb, nil
}

// QueryByID finds the dashboard by the specified ID inside the organization.
// Soft-deleted dashboards and dashboards of other organizations surface as
// ErrNotFound so existence is never confirmed across tenants.
func (c *Core) QueryByID(ctx context.Context, orgID uuid.UUID, dashboardID uuid.UUID) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.queryByID")
	defer span.End()

	dsb, err := c.storer.QueryByID(ctx, orgID, dashboardID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("query: dashboardID[%s]: %w", dashboardID, err)
	}

	return dsb, nil
}

// QueryByIDAnon finds the dashboard by ID alone for the anonymous share
// path. The caller is expected to gate access with the share token.
func (c *Core) QueryByIDAnon(ctx context.Context, dashboardID uuid.UUID) (Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.queryByIDAnon")
	defer span.End()

	dsb, err := c.storer.QueryByIDAnon(ctx, dashboardID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("query: dashboardID[%s]: %w", dashboardID, err)
	}

	return dsb, nil
}

// Query retrieves a list of existing dashboards.
func (c *Core) Query(ctx context.Context, orgID uuid.UUID, filter QueryFilter, orderBy order.By, page page.Page) ([]Dashboard, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.query")
	defer span.End()

	dsbs, err := c.storer.Query(ctx, orgID, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return dsbs, nil
}

// Count returns the total number of dashboards.
func (c *Core) Count(ctx context.Context, orgID uuid.UUID, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.dashboardbus.count")
	defer span.End()

	return c.storer.Count(ctx, orgID, filter)
}

// generateShareToken returns an opaque random token unpredictable to an
// outside party.
func generateShareToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
