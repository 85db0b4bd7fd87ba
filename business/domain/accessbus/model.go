package accessbus

import (
	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/types/accesslevel"
	"github.com/panelkit/panelkit/business/types/role"
)

// Stable denial reasons surfaced to callers and audit logs. A granted
// resolution carries no reason.
const (
	ReasonNotInvited   = "NOT_INVITED"
	ReasonShareExpired = "SHARE_EXPIRED"
)

// Identity carries the authenticated caller's standing for resolution.
type Identity struct {
	UserID uuid.UUID
	Role   role.Role
}

// ResolvedAccess is the outcome of resolving an identity against a
// dashboard. Level is the effective access; ExportAllowed travels alongside
// and is independent of the level. Reason is set only when Level is NONE.
type ResolvedAccess struct {
	Level         accesslevel.Level
	ExportAllowed bool
	Reason        string
}

// Granted reports whether the resolution yields any access at all.
func (ra ResolvedAccess) Granted() bool {
	return !ra.Level.Equal(accesslevel.None)
}
