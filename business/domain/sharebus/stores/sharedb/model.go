package sharedb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/types/accesslevel"
)

type shareDB struct {
	ID            uuid.UUID    `db:"share_id"`
	DashboardID   uuid.UUID    `db:"dashboard_id"`
	UserID        uuid.UUID    `db:"user_id"`
	Access        string       `db:"access"`
	ExportAllowed bool         `db:"export_allowed"`
	ExpiresAt     sql.NullTime `db:"expires_at"`
	RevokedAt     sql.NullTime `db:"revoked_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func toDBShare(bus sharebus.Share) shareDB {
	db := shareDB{
		ID:            bus.ID,
		DashboardID:   bus.DashboardID,
		UserID:        bus.UserID,
		Access:        bus.Access.String(),
		ExportAllowed: bus.ExportAllowed,
		CreatedAt:     bus.CreatedAt.UTC(),
		UpdatedAt:     bus.UpdatedAt.UTC(),
	}

	if bus.ExpiresAt != nil {
		db.ExpiresAt = sql.NullTime{Time: bus.ExpiresAt.UTC(), Valid: true}
	}

	if bus.RevokedAt != nil {
		db.RevokedAt = sql.NullTime{Time: bus.RevokedAt.UTC(), Valid: true}
	}

	return db
}

func toBusShare(db shareDB) (sharebus.Share, error) {
	access, err := accesslevel.Parse(db.Access)
	if err != nil {
		return sharebus.Share{}, fmt.Errorf("parse access: %w", err)
	}

	bus := sharebus.Share{
		ID:            db.ID,
		DashboardID:   db.DashboardID,
		UserID:        db.UserID,
		Access:        access,
		ExportAllowed: db.ExportAllowed,
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}

	if db.ExpiresAt.Valid {
		expiresAt := db.ExpiresAt.Time.UTC()
		bus.ExpiresAt = &expiresAt
	}

	if db.RevokedAt.Valid {
		revokedAt := db.RevokedAt.Time.UTC()
		bus.RevokedAt = &revokedAt
	}

	return bus, nil
}

func toBusShares(dbs []shareDB) ([]sharebus.Share, error) {
	bus := make([]sharebus.Share, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusShare(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
