package dashboardbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/types/name"
	"github.com/panelkit/panelkit/business/types/visibility"
)

// Dashboard represents the dashboard entity in the system. The OrgID is the
// tenant boundary and never changes after creation.
type Dashboard struct {
	ID             uuid.UUID
	OrgID          uuid.UUID
	OwnerID        uuid.UUID
	WorkspaceID    *uuid.UUID
	Name           name.Name
	Visibility     visibility.Visibility
	Tags           []string
	ShareToken     *string
	ShareEnabled   bool
	ShareExpiresAt *time.Time
	Deleted        bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewDashboard contains information needed to create a new dashboard.
type NewDashboard struct {
	OrgID       uuid.UUID
	OwnerID     uuid.UUID
	WorkspaceID *uuid.UUID
	Name        name.Name
	Visibility  visibility.Visibility
	Tags        []string
}

// UpdateDashboard contains information needed to update a dashboard. Share
// fields mutate only through the sharing operations, never through here.
type UpdateDashboard struct {
	Name       *name.Name
	Visibility *visibility.Visibility
	Tags       *[]string
}

// Sharing contains information needed to enable the public share link.
type Sharing struct {
	ExpiresAt *time.Time
}
