// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/auth"
	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/userbus"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userKey
	trKey
	dashboardKey
	accessKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

// GetUserID returns the authenticated user's id from the claims.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	claims := GetClaims(ctx)

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.UUID{}, errors.New("user id not found in context")
	}

	return userID, nil
}

// GetOrgID returns the authenticated user's organization id from the claims.
func GetOrgID(ctx context.Context) (uuid.UUID, error) {
	claims := GetClaims(ctx)

	orgID, err := uuid.Parse(claims.OrgID)
	if err != nil {
		return uuid.UUID{}, errors.New("org id not found in context")
	}

	return orgID, nil
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the user from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

func setDashboard(ctx context.Context, dsb dashboardbus.Dashboard) context.Context {
	return context.WithValue(ctx, dashboardKey, dsb)
}

// GetDashboard returns the dashboard loaded by the access guard.
func GetDashboard(ctx context.Context) (dashboardbus.Dashboard, error) {
	v, ok := ctx.Value(dashboardKey).(dashboardbus.Dashboard)
	if !ok {
		return dashboardbus.Dashboard{}, errors.New("dashboard not found in context")
	}

	return v, nil
}

func setAccess(ctx context.Context, ra accessbus.ResolvedAccess) context.Context {
	return context.WithValue(ctx, accessKey, ra)
}

// GetAccess returns the resolved access placed in the context by the access
// guard. The zero value resolves to no access, so a handler that forgets the
// guard fails closed.
func GetAccess(ctx context.Context) accessbus.ResolvedAccess {
	v, ok := ctx.Value(accessKey).(accessbus.ResolvedAccess)
	if !ok {
		return accessbus.ResolvedAccess{}
	}

	return v
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
