package dashboarddb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/sdk/sqldb/dbarray"
	"github.com/panelkit/panelkit/business/types/name"
	"github.com/panelkit/panelkit/business/types/visibility"
)

type dashboardDB struct {
	ID             uuid.UUID      `db:"dashboard_id"`
	OrgID          uuid.UUID      `db:"org_id"`
	OwnerID        uuid.UUID      `db:"owner_id"`
	WorkspaceID    *uuid.UUID     `db:"workspace_id"`
	Name           string         `db:"name"`
	Visibility     string         `db:"visibility"`
	Tags           dbarray.String `db:"tags"`
	ShareToken     sql.NullString `db:"share_token"`
	ShareEnabled   bool           `db:"share_enabled"`
	ShareExpiresAt sql.NullTime   `db:"share_expires_at"`
	Deleted        bool           `db:"deleted"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func toDBDashboard(bus dashboardbus.Dashboard) dashboardDB {
	db := dashboardDB{
		ID:           bus.ID,
		OrgID:        bus.OrgID,
		OwnerID:      bus.OwnerID,
		WorkspaceID:  bus.WorkspaceID,
		Name:         bus.Name.String(),
		Visibility:   bus.Visibility.String(),
		Tags:         dbarray.String(bus.Tags),
		ShareEnabled: bus.ShareEnabled,
		Deleted:      bus.Deleted,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}

	if bus.ShareToken != nil {
		db.ShareToken = sql.NullString{String: *bus.ShareToken, Valid: true}
	}

	if bus.ShareExpiresAt != nil {
		db.ShareExpiresAt = sql.NullTime{Time: bus.ShareExpiresAt.UTC(), Valid: true}
	}

	return db
}

func toBusDashboard(db dashboardDB) (dashboardbus.Dashboard, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return dashboardbus.Dashboard{}, fmt.Errorf("parse name: %w", err)
	}

	vis, err := visibility.Parse(db.Visibility)
	if err != nil {
		return dashboardbus.Dashboard{}, fmt.Errorf("parse visibility: %w", err)
	}

	bus := dashboardbus.Dashboard{
		ID:           db.ID,
		OrgID:        db.OrgID,
		OwnerID:      db.OwnerID,
		WorkspaceID:  db.WorkspaceID,
		Name:         nme,
		Visibility:   vis,
		Tags:         []string(db.Tags),
		ShareEnabled: db.ShareEnabled,
		Deleted:      db.Deleted,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	if db.ShareToken.Valid {
		token := db.ShareToken.String
		bus.ShareToken = &token
	}

	if db.ShareExpiresAt.Valid {
		expiresAt := db.ShareExpiresAt.Time.UTC()
		bus.ShareExpiresAt = &expiresAt
	}

	return bus, nil
}

func toBusDashboards(dbs []dashboardDB) ([]dashboardbus.Dashboard, error) {
	bus := make([]dashboardbus.Dashboard, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusDashboard(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
