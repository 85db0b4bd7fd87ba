// Package authapp maintains the app layer api for the auth domain.
package authapp

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/panelkit/panelkit/app/sdk/auth"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/app/sdk/mid"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/business/types/role"
)

type app struct {
	auth      *auth.Auth
	activeKID string
}

func newApp(ath *auth.Auth, activeKID string) *app {
	return &app{
		auth:      ath,
		activeKID: activeKID,
	}
}

// login authenticates a user by email and password and returns a signed
// token carrying the user's organization and role. Handlers downstream
// trust the claims, never the request body, for both.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.OrgID, usr.ID, usr.Role)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}

// token reissues a fresh token for an already authenticated caller.
func (a *app) token(ctx context.Context, _ *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	orgID, err := mid.GetOrgID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	claims := mid.GetClaims(ctx)

	r, err := role.Parse(claims.Role)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, orgID, userID, r)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}
