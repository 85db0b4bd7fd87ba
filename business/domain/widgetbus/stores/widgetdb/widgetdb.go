// Package widgetdb contains widget related CRUD functionality.
package widgetdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Store manages the set of APIs for widget database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (widgetbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new widget into the database.
func (s *Store) Create(ctx context.Context, wdg widgetbus.Widget) error {
	dbWdg, err := toDBWidget(wdg)
	if err != nil {
		return fmt.Errorf("todbwidget: %w", err)
	}

	const q = `
	INSERT INTO "public"."dashboard_widget"
		(widget_id, dashboard_id, widget_key, title, config, pos_x, pos_y, width, height, created_at, updated_at)
	VALUES
		(:widget_id, :dashboard_id, :widget_key, :title, :config, :pos_x, :pos_y, :width, :height, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbWdg); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a widget record in the database.
func (s *Store) Update(ctx context.Context, wdg widgetbus.Widget) error {
	dbWdg, err := toDBWidget(wdg)
	if err != nil {
		return fmt.Errorf("todbwidget: %w", err)
	}

	const q = `
	UPDATE
		"public"."dashboard_widget"
	SET
		title = :title,
		config = :config,
		pos_x = :pos_x,
		pos_y = :pos_y,
		width = :width,
		height = :height,
		updated_at = :updated_at
	WHERE
		widget_id = :widget_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbWdg); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Delete removes a widget from the database.
func (s *Store) Delete(ctx context.Context, wdg widgetbus.Widget) error {
	data := struct {
		ID string `db:"widget_id"`
	}{
		ID: wdg.ID.String(),
	}

	const q = `
	DELETE FROM
		"public"."dashboard_widget"
	WHERE
		widget_id = :widget_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified widget from the database.
func (s *Store) QueryByID(ctx context.Context, widgetID uuid.UUID) (widgetbus.Widget, error) {
	data := struct {
		ID string `db:"widget_id"`
	}{
		ID: widgetID.String(),
	}

	const q = `
	SELECT
		widget_id, dashboard_id, widget_key, title, config, pos_x, pos_y, width, height, created_at, updated_at
	FROM
		"public"."dashboard_widget"
	WHERE
		widget_id = :widget_id`

	var dbWdg widgetDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbWdg); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return widgetbus.Widget{}, fmt.Errorf("db: %w", widgetbus.ErrNotFound)
		}
		return widgetbus.Widget{}, fmt.Errorf("db: %w", err)
	}

	return toBusWidget(dbWdg)
}

// QueryByDashboard retrieves all widgets of a dashboard ordered by their
// grid position.
func (s *Store) QueryByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]widgetbus.Widget, error) {
	data := struct {
		DashboardID string `db:"dashboard_id"`
	}{
		DashboardID: dashboardID.String(),
	}

	const q = `
	SELECT
		widget_id, dashboard_id, widget_key, title, config, pos_x, pos_y, width, height, created_at, updated_at
	FROM
		"public"."dashboard_widget"
	WHERE
		dashboard_id = :dashboard_id
	ORDER BY
		pos_y, pos_x`

	var dbWdgs []widgetDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbWdgs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusWidgets(dbWdgs)
}
