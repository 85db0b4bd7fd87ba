// Package workspacedb contains workspace related CRUD functionality.
package workspacedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/panelkit/panelkit/business/domain/workspacebus"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Store manages the set of APIs for workspace database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (workspacebus.Storer, error) {
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

// Create inserts a new workspace into the database.
func (s *Store) Create(ctx context.Context, wks workspacebus.Workspace) error {
	const q = `
	INSERT INTO "public"."workspace"
		(workspace_id, org_id, name, created_at, updated_at)
	VALUES
		(:workspace_id, :org_id, :name, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(wks)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a workspace record in the database.
func (s *Store) Update(ctx context.Context, wks workspacebus.Workspace) error {
	const q = `
	UPDATE
		"public"."workspace"
	SET
		name = :name,
		updated_at = :updated_at
	WHERE
		workspace_id = :workspace_id AND org_id = :org_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBWorkspace(wks)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryByID gets the specified workspace from the database.
func (s *Store) QueryByID(ctx context.Context, orgID uuid.UUID, workspaceID uuid.UUID) (workspacebus.Workspace, error) {
	data := struct {
		OrgID string `db:"org_id"`
		ID    string `db:"workspace_id"`
	}{
		OrgID: orgID.String(),
		ID:    workspaceID.String(),
	}

	const q = `
	SELECT
		workspace_id, org_id, name, created_at, updated_at
	FROM
		"public"."workspace"
	WHERE
		workspace_id = :workspace_id AND org_id = :org_id`

	var dbWks workspaceDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbWks); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Workspace{}, fmt.Errorf("db: %w", workspacebus.ErrNotFound)
		}
		return workspacebus.Workspace{}, fmt.Errorf("db: %w", err)
	}

	return toBusWorkspace(dbWks)
}

// QueryByOrg retrieves all workspaces inside an organization.
func (s *Store) QueryByOrg(ctx context.Context, orgID uuid.UUID) ([]workspacebus.Workspace, error) {
	data := struct {
		OrgID string `db:"org_id"`
	}{
		OrgID: orgID.String(),
	}

	const q = `
	SELECT
		workspace_id, org_id, name, created_at, updated_at
	FROM
		"public"."workspace"
	WHERE
		org_id = :org_id
	ORDER BY
		name`

	var dbWkss []workspaceDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbWkss); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusWorkspaces(dbWkss)
}

// AddMember inserts a membership row for the workspace.
func (s *Store) AddMember(ctx context.Context, mbr workspacebus.Membership) error {
	const q = `
	INSERT INTO "public"."workspace_member"
		(workspace_id, user_id, role, created_at)
	VALUES
		(:workspace_id, :user_id, :role, :created_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBMembership(mbr)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) {
			return fmt.Errorf("namedexeccontext: %w", workspacebus.ErrUniqueMember)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// RemoveMember deletes a membership row from the workspace.
func (s *Store) RemoveMember(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) error {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		UserID      string `db:"user_id"`
	}{
		WorkspaceID: workspaceID.String(),
		UserID:      userID.String(),
	}

	const q = `
	DELETE FROM
		"public"."workspace_member"
	WHERE
		workspace_id = :workspace_id AND user_id = :user_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, data); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// QueryMembership gets the membership row for the (workspace, user) pair.
func (s *Store) QueryMembership(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (workspacebus.Membership, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		UserID      string `db:"user_id"`
	}{
		WorkspaceID: workspaceID.String(),
		UserID:      userID.String(),
	}

	const q = `
	SELECT
		workspace_id, user_id, role, created_at
	FROM
		"public"."workspace_member"
	WHERE
		workspace_id = :workspace_id AND user_id = :user_id`

	var dbMbr membershipDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbMbr); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return workspacebus.Membership{}, fmt.Errorf("db: %w", workspacebus.ErrNotMember)
		}
		return workspacebus.Membership{}, fmt.Errorf("db: %w", err)
	}

	return toBusMembership(dbMbr)
}

// QueryMembers retrieves all memberships of a workspace.
func (s *Store) QueryMembers(ctx context.Context, workspaceID uuid.UUID) ([]workspacebus.Membership, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
	}{
		WorkspaceID: workspaceID.String(),
	}

	const q = `
	SELECT
		workspace_id, user_id, role, created_at
	FROM
		"public"."workspace_member"
	WHERE
		workspace_id = :workspace_id
	ORDER BY
		created_at`

	var dbMbrs []membershipDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbMbrs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusMemberships(dbMbrs)
}
