// Package dashboarddb contains dashboard related CRUD functionality.
package dashboarddb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/sdk/order"
	"github.com/panelkit/panelkit/business/sdk/page"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Store manages the set of APIs for dashboard database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (dashboardbus.Storer, error) {
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

// Create inserts a new dashboard into the database.
func (s *Store) Create(ctx context.Context, dsb dashboardbus.Dashboard) error {
	const q = `
	INSERT INTO "public"."dashboard"
		(dashboard_id, org_id, owner_id, workspace_id, name, visibility, tags, share_token, share_enabled, share_expires_at, deleted, created_at, updated_at)
	VALUES
		(:dashboard_id, :org_id, :owner_id, :workspace_id, :name, :visibility, :tags, :share_token, :share_enabled, :share_expires_at, :deleted, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDashboard(dsb)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a dashboard record in the database. The org id is part of
// the predicate so a record can never hop tenants.
func (s *Store) Update(ctx context.Context, dsb dashboardbus.Dashboard) error {
	const q = `
	UPDATE
		"public"."dashboard"
	SET
		name = :name,
		visibility = :visibility,
		tags = :tags,
		share_token = :share_token,
		share_enabled = :share_enabled,
		share_expires_at = :share_expires_at,
		deleted = :deleted,
		updated_at = :updated_at
	WHERE
		dashboard_id = :dashboard_id AND org_id = :org_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBDashboard(dsb)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified dashboard from the database scoped to the
// organization. Soft-deleted records are filtered out here so every caller
// sees them as absent.
func (s *Store) QueryByID(ctx context.Context, orgID uuid.UUID, dashboardID uuid.UUID) (dashboardbus.Dashboard, error) {
	data := struct {
		ID    string `db:"dashboard_id"`
		OrgID string `db:"org_id"`
	}{
		ID:    dashboardID.String(),
		OrgID: orgID.String(),
	}

	const q = `
	SELECT
		dashboard_id, org_id, owner_id, workspace_id, name, visibility, tags, share_token, share_enabled, share_expires_at, deleted, created_at, updated_at
	FROM
		"public"."dashboard"
	WHERE
		dashboard_id = :dashboard_id AND org_id = :org_id AND deleted = false`

	var dbDsb dashboardDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDsb); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", dashboardbus.ErrNotFound)
		}
		return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", err)
	}

	return toBusDashboard(dbDsb)
}

// QueryByIDAnon gets the specified dashboard by id alone for the anonymous
// share path.
func (s *Store) QueryByIDAnon(ctx context.Context, dashboardID uuid.UUID) (dashboardbus.Dashboard, error) {
	data := struct {
		ID string `db:"dashboard_id"`
	}{
		ID: dashboardID.String(),
	}

	const q = `
	SELECT
		dashboard_id, org_id, owner_id, workspace_id, name, visibility, tags, share_token, share_enabled, share_expires_at, deleted, created_at, updated_at
	FROM
		"public"."dashboard"
	WHERE
		dashboard_id = :dashboard_id AND deleted = false`

	var dbDsb dashboardDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbDsb); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", dashboardbus.ErrNotFound)
		}
		return dashboardbus.Dashboard{}, fmt.Errorf("db: %w", err)
	}

	return toBusDashboard(dbDsb)
}

// Query retrieves a list of existing dashboards from the database.
func (s *Store) Query(ctx context.Context, orgID uuid.UUID, filter dashboardbus.QueryFilter, orderBy order.By, page page.Page) ([]dashboardbus.Dashboard, error) {
	data := map[string]any{
		"org_id":        orgID.String(),
		"offset":        (page.Number() - 1) * page.RowsPerPage(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		dashboard_id, org_id, owner_id, workspace_id, name, visibility, tags, share_token, share_enabled, share_expires_at, deleted, created_at, updated_at
	FROM
		"public"."dashboard"
	WHERE
		org_id = :org_id AND deleted = false`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbDsbs []dashboardDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbDsbs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusDashboards(dbDsbs)
}

// Count returns the total number of dashboards in the DB.
func (s *Store) Count(ctx context.Context, orgID uuid.UUID, filter dashboardbus.QueryFilter) (int, error) {
	data := map[string]any{
		"org_id": orgID.String(),
	}

	const q = `
	SELECT
		count(1)
	FROM
		"public"."dashboard"
	WHERE
		org_id = :org_id AND deleted = false`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}
