// Package rbac provides the coarse role policy check that runs ahead of the
// fine-grained access resolution. It answers "may this organization role
// perform this action on this resource type at all", keeping the policy in an
// in-memory casbin enforcer.
package rbac

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/panelkit/panelkit/business/types/role"
)

const casbinModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ADMIN" || (r.sub == p.sub && r.obj == p.obj && r.act == p.act)
`

// The set of resource types the policy covers.
const (
	ResourceDashboard = "DASHBOARD"
	ResourceWidget    = "WIDGET"
	ResourceShare     = "SHARE"
	ResourceUser      = "USER"
)

// The set of actions the policy covers.
const (
	ActionRead   = "READ"
	ActionWrite  = "WRITE"
	ActionManage = "MANAGE"
)

// ErrDenied is returned when the role policy does not permit the action.
var ErrDenied = fmt.Errorf("role policy denied")

// Enforcer holds the in-memory role policy.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

// New constructs the enforcer with the static platform policy loaded. Admin
// is matched inside the casbin model and needs no explicit rules.
func New() (*Enforcer, error) {
	m, err := model.NewModelFromString(casbinModel)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	rules := [][]string{
		{role.Member.String(), ResourceDashboard, ActionRead},
		{role.Member.String(), ResourceDashboard, ActionWrite},
		{role.Member.String(), ResourceDashboard, ActionManage},
		{role.Member.String(), ResourceWidget, ActionRead},
		{role.Member.String(), ResourceWidget, ActionWrite},
		{role.Member.String(), ResourceShare, ActionRead},
		{role.Member.String(), ResourceShare, ActionManage},
		{role.Viewer.String(), ResourceDashboard, ActionRead},
		{role.Viewer.String(), ResourceWidget, ActionRead},
	}

	if _, err := e.AddPolicies(rules); err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}

	return &Enforcer{enforcer: e}, nil
}

// Check validates the role may perform the action on the resource type.
func (e *Enforcer) Check(r role.Role, resource string, action string) error {
	ok, err := e.enforcer.Enforce(r.String(), resource, action)
	if err != nil {
		return fmt.Errorf("enforce: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %s cannot %s %s", ErrDenied, r, action, resource)
	}

	return nil
}
