package sharebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/types/accesslevel"
)

// Share represents an invite record granting a specific user access to a
// specific dashboard. A revoked or expired share grants nothing but stays in
// the database for audit history.
type Share struct {
	ID            uuid.UUID
	DashboardID   uuid.UUID
	UserID        uuid.UUID
	Access        accesslevel.Level
	ExportAllowed bool
	ExpiresAt     *time.Time
	RevokedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Expired reports whether the share's expiry has elapsed at the specified
// time. A share without an expiry never expires.
func (s Share) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// NewShare contains information needed to create a new share.
type NewShare struct {
	DashboardID   uuid.UUID
	UserID        uuid.UUID
	Access        accesslevel.Level
	ExportAllowed bool
	ExpiresAt     *time.Time
}

// UpdateShare contains information needed to update a share.
type UpdateShare struct {
	Access        *accesslevel.Level
	ExportAllowed *bool
	ExpiresAt     *time.Time
}
