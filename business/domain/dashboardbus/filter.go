package dashboardbus

import (
	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/types/name"
	"github.com/panelkit/panelkit/business/types/visibility"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID          *uuid.UUID
	OwnerID     *uuid.UUID
	WorkspaceID *uuid.UUID
	Name        *name.Name
	Visibility  *visibility.Visibility
}
