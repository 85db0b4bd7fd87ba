// Package workspacebus provides business access to workspaces and
// workspace membership.
package workspacebus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/foundation/otel"
)

// Set of error variables for workspace operations.
var (
	ErrNotFound     = errors.New("workspace not found")
	ErrNotMember    = errors.New("user is not a member of the workspace")
	ErrUniqueMember = errors.New("user is already a member of the workspace")
)

// Storer defines the behavior required by the workspacebus to interact with
// the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, wks Workspace) error
	Update(ctx context.Context, wks Workspace) error
	QueryByID(ctx context.Context, orgID uuid.UUID, workspaceID uuid.UUID) (Workspace, error)
	QueryByOrg(ctx context.Context, orgID uuid.UUID) ([]Workspace, error)
	AddMember(ctx context.Context, mbr Membership) error
	RemoveMember(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) error
	QueryMembership(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (Membership, error)
	QueryMembers(ctx context.Context, workspaceID uuid.UUID) ([]Membership, error)
}

// Core manages the set of APIs for workspace access.
type Core struct {
	storer Storer
}

// NewCore constructs a core for workspace api access.
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

// Create adds a new workspace to the system.
func (c *Core) Create(ctx context.Context, nw NewWorkspace) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.create")
	defer span.End()

	now := time.Now()

	wks := Workspace{
		ID:        uuid.New(),
		OrgID:     nw.OrgID,
		Name:      nw.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, wks); err != nil {
		return Workspace{}, fmt.Errorf("create: %w", err)
	}

	return wks, nil
}

// Update modifies data about a workspace.
func (c *Core) Update(ctx context.Context, wks Workspace, uw UpdateWorkspace) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.update")
	defer span.End()

	if uw.Name != nil {
		wks.Name = *uw.Name
	}

	wks.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, wks); err != nil {
		return Workspace{}, fmt.Errorf("update: %w", err)
	}

	return wks, nil
}

// QueryByID finds the workspace by the specified ID inside the organization.
func (c *Core) QueryByID(ctx context.Context, orgID uuid.UUID, workspaceID uuid.UUID) (Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryByID")
	defer span.End()

	wks, err := c.storer.QueryByID(ctx, orgID, workspaceID)
	if err != nil {
		return Workspace{}, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return wks, nil
}

// QueryByOrg retrieves all workspaces inside an organization.
func (c *Core) QueryByOrg(ctx context.Context, orgID uuid.UUID) ([]Workspace, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryByOrg")
	defer span.End()

	wkss, err := c.storer.QueryByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("query: orgID[%s]: %w", orgID, err)
	}

	return wkss, nil
}

// AddMember registers a user inside a workspace with the specified role.
func (c *Core) AddMember(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID, role MemberRole) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.addMember")
	defer span.End()

	mbr := Membership{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		CreatedAt:   time.Now(),
	}

	if err := c.storer.AddMember(ctx, mbr); err != nil {
		return Membership{}, fmt.Errorf("addmember: %w", err)
	}

	return mbr, nil
}

// RemoveMember drops a user from a workspace.
func (c *Core) RemoveMember(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.removeMember")
	defer span.End()

	if err := c.storer.RemoveMember(ctx, workspaceID, userID); err != nil {
		return fmt.Errorf("removemember: %w", err)
	}

	return nil
}

// QueryMembership returns the user's standing inside the workspace, or
// ErrNotMember when the user does not belong to it.
func (c *Core) QueryMembership(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryMembership")
	defer span.End()

	mbr, err := c.storer.QueryMembership(ctx, workspaceID, userID)
	if err != nil {
		return Membership{}, fmt.Errorf("query: workspaceID[%s] userID[%s]: %w", workspaceID, userID, err)
	}

	return mbr, nil
}

// QueryMembers retrieves all memberships of a workspace.
func (c *Core) QueryMembers(ctx context.Context, workspaceID uuid.UUID) ([]Membership, error) {
	ctx, span := otel.AddSpan(ctx, "business.workspacebus.queryMembers")
	defer span.End()

	mbrs, err := c.storer.QueryMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("query: workspaceID[%s]: %w", workspaceID, err)
	}

	return mbrs, nil
}
