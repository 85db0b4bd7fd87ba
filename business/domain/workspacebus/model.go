package workspacebus

import (
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/types/name"
)

// Workspace represents a team grouping inside an organization. Dashboards
// with workspace visibility are scoped to one of these.
type Workspace struct {
	ID        uuid.UUID
	OrgID     uuid.UUID
	Name      name.Name
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewWorkspace contains information needed to create a new workspace.
type NewWorkspace struct {
	OrgID uuid.UUID
	Name  name.Name
}

// UpdateWorkspace contains information needed to update a workspace.
type UpdateWorkspace struct {
	Name *name.Name
}

// Membership represents a user's standing inside a workspace.
type Membership struct {
	WorkspaceID uuid.UUID
	UserID      uuid.UUID
	Role        MemberRole
	CreatedAt   time.Time
}
