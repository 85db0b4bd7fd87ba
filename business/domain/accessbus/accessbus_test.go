package accessbus_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/domain/workspacebus"
	"github.com/panelkit/panelkit/business/types/accesslevel"
	"github.com/panelkit/panelkit/business/types/role"
	"github.com/panelkit/panelkit/foundation/logger"
)

type shareReaderFunc func(ctx context.Context, dashboardID uuid.UUID, userID uuid.UUID) (sharebus.Share, error)

func (f shareReaderFunc) QueryActiveByDashboardAndUser(ctx context.Context, dashboardID uuid.UUID, userID uuid.UUID) (sharebus.Share, error) {
	return f(ctx, dashboardID, userID)
}

type membershipReaderFunc func(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (workspacebus.Membership, error)

func (f membershipReaderFunc) QueryMembership(ctx context.Context, workspaceID uuid.UUID, userID uuid.UUID) (workspacebus.Membership, error) {
	return f(ctx, workspaceID, userID)
}

func noShare(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
	return sharebus.Share{}, sharebus.ErrNotFound
}

func noMembership(context.Context, uuid.UUID, uuid.UUID) (workspacebus.Membership, error) {
	return workspacebus.Membership{}, workspacebus.ErrNotMember
}

func testLog() *logger.Logger {
	return logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	ownerID := uuid.New()
	workspaceID := uuid.New()
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	dashboard := dashboardbus.Dashboard{
		ID:      uuid.New(),
		OrgID:   uuid.New(),
		OwnerID: ownerID,
	}

	workspaceDashboard := dashboard
	workspaceDashboard.WorkspaceID = &workspaceID

	tests := []struct {
		name    string
		idn     accessbus.Identity
		dsb     dashboardbus.Dashboard
		shares  shareReaderFunc
		members membershipReaderFunc
		want    accessbus.ResolvedAccess
		wantErr bool
	}{
		{
			name:    "admin owns everything",
			idn:     accessbus.Identity{UserID: userID, Role: role.Admin},
			dsb:     dashboard,
			shares:  noShare,
			members: noMembership,
			want:    accessbus.ResolvedAccess{Level: accesslevel.Owner, ExportAllowed: true},
		},
		{
			name:    "dashboard owner",
			idn:     accessbus.Identity{UserID: ownerID, Role: role.Member},
			dsb:     dashboard,
			shares:  noShare,
			members: noMembership,
			want:    accessbus.ResolvedAccess{Level: accesslevel.Owner, ExportAllowed: true},
		},
		{
			name: "workspace owner",
			idn:  accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:  workspaceDashboard,
			shares: func(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
				return sharebus.Share{}, errors.New("share lookup must not run when a workspace owner resolves")
			},
			members: func(_ context.Context, wksID uuid.UUID, usrID uuid.UUID) (workspacebus.Membership, error) {
				if wksID != workspaceID || usrID != userID {
					return workspacebus.Membership{}, errors.New("membership lookup got the wrong ids")
				}
				return workspacebus.Membership{Role: workspacebus.MemberRoleOwner}, nil
			},
			want: accessbus.ResolvedAccess{Level: accesslevel.Owner, ExportAllowed: true},
		},
		{
			name: "workspace member falls through to the share",
			idn:  accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:  workspaceDashboard,
			shares: func(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
				return sharebus.Share{Access: accesslevel.Edit, ExpiresAt: &future}, nil
			},
			members: func(context.Context, uuid.UUID, uuid.UUID) (workspacebus.Membership, error) {
				return workspacebus.Membership{Role: workspacebus.MemberRoleMember}, nil
			},
			want: accessbus.ResolvedAccess{Level: accesslevel.Edit},
		},
		{
			name:    "not invited",
			idn:     accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:     dashboard,
			shares:  noShare,
			members: noMembership,
			want:    accessbus.ResolvedAccess{Level: accesslevel.None, Reason: accessbus.ReasonNotInvited},
		},
		{
			name: "share expired",
			idn:  accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:  dashboard,
			shares: func(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
				return sharebus.Share{Access: accesslevel.Edit, ExpiresAt: &past}, nil
			},
			members: noMembership,
			want:    accessbus.ResolvedAccess{Level: accesslevel.None, Reason: accessbus.ReasonShareExpired},
		},
		{
			name: "active share grants its level and export flag",
			idn:  accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:  dashboard,
			shares: func(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
				return sharebus.Share{Access: accesslevel.View, ExportAllowed: true}, nil
			},
			members: noMembership,
			want:    accessbus.ResolvedAccess{Level: accesslevel.View, ExportAllowed: true},
		},
		{
			name: "viewer role caps an edit share at view",
			idn:  accessbus.Identity{UserID: userID, Role: role.Viewer},
			dsb:  dashboard,
			shares: func(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
				return sharebus.Share{Access: accesslevel.Edit}, nil
			},
			members: noMembership,
			want:    accessbus.ResolvedAccess{Level: accesslevel.View},
		},
		{
			name:    "membership lookup failure denies",
			idn:     accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:     workspaceDashboard,
			shares:  noShare,
			members: func(context.Context, uuid.UUID, uuid.UUID) (workspacebus.Membership, error) {
				return workspacebus.Membership{}, errors.New("db down")
			},
			wantErr: true,
		},
		{
			name: "share lookup failure denies",
			idn:  accessbus.Identity{UserID: userID, Role: role.Member},
			dsb:  dashboard,
			shares: func(context.Context, uuid.UUID, uuid.UUID) (sharebus.Share, error) {
				return sharebus.Share{}, errors.New("db down")
			},
			members: noMembership,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := accessbus.NewCore(testLog(), tt.shares, tt.members, nil)

			got, err := core.Resolve(context.Background(), tt.idn, tt.dsb)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve: %s", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolved access mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRequireMin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ra      accessbus.ResolvedAccess
		minimum accesslevel.Level
		wantErr bool
	}{
		{"owner meets edit", accessbus.ResolvedAccess{Level: accesslevel.Owner}, accesslevel.Edit, false},
		{"edit meets edit", accessbus.ResolvedAccess{Level: accesslevel.Edit}, accesslevel.Edit, false},
		{"view misses edit", accessbus.ResolvedAccess{Level: accesslevel.View}, accesslevel.Edit, true},
		{"none misses view", accessbus.ResolvedAccess{Level: accesslevel.None, Reason: accessbus.ReasonNotInvited}, accesslevel.View, true},
		{"zero value fails closed", accessbus.ResolvedAccess{}, accesslevel.View, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accessbus.RequireMin(tt.ra, tt.minimum)
			if tt.wantErr {
				if !errors.Is(err, accessbus.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
		})
	}
}

func TestRequireExport(t *testing.T) {
	t.Parallel()

	// The export flag rides beside the level: a view share may export and an
	// owner-level resolution without the flag may not.
	if err := accessbus.RequireExport(accessbus.ResolvedAccess{Level: accesslevel.View, ExportAllowed: true}); err != nil {
		t.Errorf("view with export flag: unexpected error: %s", err)
	}

	err := accessbus.RequireExport(accessbus.ResolvedAccess{Level: accesslevel.Edit})
	if !errors.Is(err, accessbus.ErrForbidden) {
		t.Errorf("edit without export flag: expected ErrForbidden, got %v", err)
	}
}

func TestGranted(t *testing.T) {
	t.Parallel()

	if (accessbus.ResolvedAccess{}).Granted() {
		t.Error("zero value must not be granted")
	}

	if !(accessbus.ResolvedAccess{Level: accesslevel.View}).Granted() {
		t.Error("view level must be granted")
	}
}
