// Package sharedb contains share related CRUD functionality.
package sharedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Store manages the set of APIs for share database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (sharebus.Storer, error) {
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

// Create inserts a new share into the database. A partial unique index on
// (dashboard_id, user_id) WHERE revoked_at IS NULL keeps at most one
// active share per user on a dashboard.
func (s *Store) Create(ctx context.Context, shr sharebus.Share) error {
	const q = `
	INSERT INTO "public"."dashboard_share"
		(share_id, dashboard_id, user_id, access, export_allowed, expires_at, revoked_at, created_at, updated_at)
	VALUES
		(:share_id, :dashboard_id, :user_id, :access, :export_allowed, :expires_at, :revoked_at, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBShare(shr)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", sharebus.ErrUniqueShare)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a share record in the database.
func (s *Store) Update(ctx context.Context, shr sharebus.Share) error {
	const q = `
	UPDATE
		"public"."dashboard_share"
	SET
		access = :access,
		export_allowed = :export_allowed,
		expires_at = :expires_at,
		revoked_at = :revoked_at,
		updated_at = :updated_at
	WHERE
		share_id = :share_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBShare(shr)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified share from the database.
func (s *Store) QueryByID(ctx context.Context, shareID uuid.UUID) (sharebus.Share, error) {
	data := struct {
		ID string `db:"share_id"`
	}{
		ID: shareID.String(),
	}

	const q = `
	SELECT
		share_id, dashboard_id, user_id, access, export_allowed, expires_at, revoked_at, created_at, updated_at
	FROM
		"public"."dashboard_share"
	WHERE
		share_id = :share_id`

	var dbShr shareDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbShr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return sharebus.Share{}, fmt.Errorf("db: %w", sharebus.ErrNotFound)
		}
		return sharebus.Share{}, fmt.Errorf("db: %w", err)
	}

	return toBusShare(dbShr)
}

// QueryActiveByDashboardAndUser gets the single non-revoked share for the
// (dashboard, user) pair.
func (s *Store) QueryActiveByDashboardAndUser(ctx context.Context, dashboardID uuid.UUID, userID uuid.UUID) (sharebus.Share, error) {
	data := struct {
		DashboardID string `db:"dashboard_id"`
		UserID      string `db:"user_id"`
	}{
		DashboardID: dashboardID.String(),
		UserID:      userID.String(),
	}

	const q = `
	SELECT
		share_id, dashboard_id, user_id, access, export_allowed, expires_at, revoked_at, created_at, updated_at
	FROM
		"public"."dashboard_share"
	WHERE
		dashboard_id = :dashboard_id AND user_id = :user_id AND revoked_at IS NULL`

	var dbShr shareDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbShr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return sharebus.Share{}, fmt.Errorf("db: %w", sharebus.ErrNotFound)
		}
		return sharebus.Share{}, fmt.Errorf("db: %w", err)
	}

	return toBusShare(dbShr)
}

// QueryByDashboard retrieves all shares for a dashboard.
func (s *Store) QueryByDashboard(ctx context.Context, dashboardID uuid.UUID) ([]sharebus.Share, error) {
	data := struct {
		DashboardID string `db:"dashboard_id"`
	}{
		DashboardID: dashboardID.String(),
	}

	const q = `
	SELECT
		share_id, dashboard_id, user_id, access, export_allowed, expires_at, revoked_at, created_at, updated_at
	FROM
		"public"."dashboard_share"
	WHERE
		dashboard_id = :dashboard_id
	ORDER BY
		created_at DESC`

	var dbShrs []shareDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbShrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusShares(dbShrs)
}
