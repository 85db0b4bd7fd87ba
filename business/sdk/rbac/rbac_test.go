package rbac_test

import (
	"errors"
	"testing"

	"github.com/panelkit/panelkit/business/sdk/rbac"
	"github.com/panelkit/panelkit/business/types/role"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	enforcer, err := rbac.New()
	if err != nil {
		t.Fatalf("building enforcer: %s", err)
	}

	tests := []struct {
		name     string
		role     role.Role
		resource string
		action   string
		allowed  bool
	}{
		{"admin manages users", role.Admin, rbac.ResourceUser, rbac.ActionManage, true},
		{"admin writes widgets", role.Admin, rbac.ResourceWidget, rbac.ActionWrite, true},
		{"member manages dashboards", role.Member, rbac.ResourceDashboard, rbac.ActionManage, true},
		{"member manages shares", role.Member, rbac.ResourceShare, rbac.ActionManage, true},
		{"member cannot manage users", role.Member, rbac.ResourceUser, rbac.ActionManage, false},
		{"viewer reads dashboards", role.Viewer, rbac.ResourceDashboard, rbac.ActionRead, true},
		{"viewer reads widgets", role.Viewer, rbac.ResourceWidget, rbac.ActionRead, true},
		{"viewer cannot write dashboards", role.Viewer, rbac.ResourceDashboard, rbac.ActionWrite, false},
		{"viewer cannot read shares", role.Viewer, rbac.ResourceShare, rbac.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := enforcer.Check(tt.role, tt.resource, tt.action)

			if tt.allowed {
				if err != nil {
					t.Fatalf("expected allow, got %s", err)
				}
				return
			}

			if !errors.Is(err, rbac.ErrDenied) {
				t.Fatalf("expected ErrDenied, got %v", err)
			}
		})
	}
}
