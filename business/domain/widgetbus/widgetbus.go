// Package widgetbus provides business access to dashboard widgets.
package widgetbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/foundation/logger"
	"github.com/panelkit/panelkit/foundation/otel"
)

// Grid bounds for widget layout.
const (
	maxGridWidth  = 12
	maxGridHeight = 20
)

// Set of error variables for widget operations.
var (
	ErrNotFound      = errors.New("widget not found")
	ErrInvalidLayout = errors.New("widget layout is out of grid bounds")
)

// Storer defines the behavior required by the widgetbus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, wdg Widget) error
	Update(ctx context.Context, wdg Widget) error
	Delete(ctx context.Context, wdg Widget) error
	QueryByID(ctx context.Context, widgetID uuid.UUID) (Widget, error)
	QueryByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]Widget, error)
}

// Core manages the set of APIs for widget access.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for widget api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
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

	return NewCore(c.log, storer), nil
}

// Create adds a new widget to the system. The config is sanitized against
// the key's schema before storage; dropped fields are logged, never stored.
func (c *Core) Create(ctx context.Context, nw NewWidget) (Widget, error) {
	ctx, span := otel.AddSpan(ctx, "business.widgetbus.create")
	defer span.End()

	if err := validLayout(nw.Layout); err != nil {
		return Widget{}, err
	}

	config, dropped := SanitizeConfig(nw.Key, nw.Config)
	if len(dropped) > 0 {
		c.log.Info(ctx, "widget config sanitized", "widgetkey", nw.Key, "dropped", dropped)
	}

	now := time.Now()

	wdg := Widget{
		ID:          uuid.New(),
		DashboardID: nw.DashboardID,
		Key:         nw.Key,
		Title:       nw.Title,
		Config:      config,
		Layout:      nw.Layout,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, wdg); err != nil {
		return Widget{}, fmt.Errorf("create: %w", err)
	}

	return wdg, nil
}

// Update modifies data about a widget. A provided config replaces the stored
// one after sanitization.
func (c *Core) Update(ctx context.Context, wdg Widget, uw UpdateWidget) (Widget, error) {
	ctx, span := otel.AddSpan(ctx, "business.widgetbus.update")
	defer span.End()

	if uw.Title != nil {
		wdg.Title = *uw.Title
	}

	if uw.Config != nil {
		config, dropped := SanitizeConfig(wdg.Key, uw.Config)
		if len(dropped) > 0 {
			c.log.Info(ctx, "widget config sanitized", "widgetkey", wdg.Key, "dropped", dropped)
		}
		wdg.Config = config
	}

	if uw.Layout != nil {
		if err := validLayout(*uw.Layout); err != nil {
			return Widget{}, err
		}
		wdg.Layout = *uw.Layout
	}

	wdg.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, wdg); err != nil {
		return Widget{}, fmt.Errorf("update: %w", err)
	}

	return wdg, nil
}

// Delete removes the specified widget.
func (c *Core) Delete(ctx context.Context, wdg Widget) error {
	ctx, span := otel.AddSpan(ctx, "business.widgetbus.delete")
	defer span.End()

	if err := c.storer.Delete(ctx, wdg); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	return nil
}

// QueryByID finds the widget by the specified ID.
func (c *Core) QueryByID(ctx context.Context, widgetID uuid.UUID) (Widget, error) {
	ctx, span := otel.AddSpan(ctx, "business.widgetbus.queryByID")
	defer span.End()

	wdg, err := c.storer.QueryByID(ctx, widgetID)
	if err != nil {
		return Widget{}, fmt.Errorf("query: widgetID[%s]: %w", widgetID, err)
	}

	return wdg, nil
}

// QueryByDashboard retrieves all widgets of a dashboard. Configs are
// sanitized on the way out as well, so rows written before a schema
// tightened never leak stale fields.
func (c *Core) QueryByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]Widget, error) {
	ctx, span := otel.AddSpan(ctx, "business.widgetbus.queryByDashboard")
	defer span.End()

	wdgs, err := c.storer.QueryByDashboard(ctx, dashboardID)
	if err != nil {
		return nil, fmt.Errorf("query: dashboardID[%s]: %w", dashboardID, err)
	}

	for i := range wdgs {
		config, dropped := SanitizeConfig(wdgs[i].Key, wdgs[i].Config)
		if len(dropped) > 0 {
			c.log.Info(ctx, "widget config sanitized on read", "widgetkey", wdgs[i].Key, "dropped", dropped)
		}
		wdgs[i].Config = config
	}

	return wdgs, nil
}

func validLayout(l Layout) error {
	if l.X < 0 || l.Y < 0 {
		return ErrInvalidLayout
	}

	if l.W < 1 || l.W > maxGridWidth {
		return ErrInvalidLayout
	}

	if l.H < 1 || l.H > maxGridHeight {
		return ErrInvalidLayout
	}

	return nil
}
