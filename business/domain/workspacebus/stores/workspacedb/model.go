package workspacedb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/workspacebus"
	"github.com/panelkit/panelkit/business/types/name"
)

type workspaceDB struct {
	ID        uuid.UUID `db:"workspace_id"`
	OrgID     uuid.UUID `db:"org_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBWorkspace(bus workspacebus.Workspace) workspaceDB {
	return workspaceDB{
		ID:        bus.ID,
		OrgID:     bus.OrgID,
		Name:      bus.Name.String(),
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusWorkspace(db workspaceDB) (workspacebus.Workspace, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return workspacebus.Workspace{}, fmt.Errorf("parse name: %w", err)
	}

	bus := workspacebus.Workspace{
		ID:        db.ID,
		OrgID:     db.OrgID,
		Name:      nme,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusWorkspaces(dbs []workspaceDB) ([]workspacebus.Workspace, error) {
	bus := make([]workspacebus.Workspace, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusWorkspace(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}

type membershipDB struct {
	WorkspaceID uuid.UUID `db:"workspace_id"`
	UserID      uuid.UUID `db:"user_id"`
	Role        string    `db:"role"`
	CreatedAt   time.Time `db:"created_at"`
}

func toDBMembership(bus workspacebus.Membership) membershipDB {
	return membershipDB{
		WorkspaceID: bus.WorkspaceID,
		UserID:      bus.UserID,
		Role:        bus.Role.String(),
		CreatedAt:   bus.CreatedAt.UTC(),
	}
}

func toBusMembership(db membershipDB) (workspacebus.Membership, error) {
	role, err := workspacebus.ParseMemberRole(db.Role)
	if err != nil {
		return workspacebus.Membership{}, fmt.Errorf("parse role: %w", err)
	}

	bus := workspacebus.Membership{
		WorkspaceID: db.WorkspaceID,
		UserID:      db.UserID,
		Role:        role,
		CreatedAt:   db.CreatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusMemberships(dbs []membershipDB) ([]workspacebus.Membership, error) {
	bus := make([]workspacebus.Membership, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusMembership(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
