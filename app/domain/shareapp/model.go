package shareapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/domain/sharebus"
	"github.com/panelkit/panelkit/business/types/accesslevel"
)

// Share represents the application model for a share invite.
type Share struct {
	ID            string `json:"id"`
	DashboardID   string `json:"dashboardId"`
	UserID        string `json:"userId"`
	Access        string `json:"access"`
	ExportAllowed bool   `json:"exportAllowed"`
	ExpiresAt     string `json:"expiresAt,omitempty"`
	RevokedAt     string `json:"revokedAt,omitempty"`
	CreatedAt     string `json:"createdAt"`
}

// Encode implements the web.Encoder interface.
func (app Share) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppShare(bus sharebus.Share) Share {
	app := Share{
		ID:            bus.ID.String(),
		DashboardID:   bus.DashboardID.String(),
		UserID:        bus.UserID.String(),
		Access:        bus.Access.String(),
		ExportAllowed: bus.ExportAllowed,
		CreatedAt:     bus.CreatedAt.Format(time.RFC3339),
	}

	if bus.ExpiresAt != nil {
		app.ExpiresAt = bus.ExpiresAt.Format(time.RFC3339)
	}

	if bus.RevokedAt != nil {
		app.RevokedAt = bus.RevokedAt.Format(time.RFC3339)
	}

	return app
}

// Shares is the collection encoder for share lists.
type Shares []Share

// Encode implements the web.Encoder interface.
func (app Shares) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppShares(bus []sharebus.Share) Shares {
	app := make(Shares, len(bus))
	for i, shr := range bus {
		app[i] = toAppShare(shr)
	}

	return app
}

// =============================================================================

// NewShare defines the data needed to invite a user to a dashboard.
type NewShare struct {
	UserID        string `json:"userId" validate:"required,uuid"`
	Access        string `json:"access" validate:"required"`
	ExportAllowed bool   `json:"exportAllowed"`
	ExpiresAt     string `json:"expiresAt" validate:"omitempty"`
}

// Decode implements the web.Decoder interface.
func (app *NewShare) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewShare) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewShare(app NewShare, dashboardID uuid.UUID) (sharebus.NewShare, error) {
	userID, err := uuid.Parse(app.UserID)
	if err != nil {
		return sharebus.NewShare{}, fmt.Errorf("parse userID: %w", err)
	}

	access, err := accesslevel.ParseGrantable(app.Access)
	if err != nil {
		return sharebus.NewShare{}, fmt.Errorf("parse access: %w", err)
	}

	var expiresAt *time.Time
	if app.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, app.ExpiresAt)
		if err != nil {
			return sharebus.NewShare{}, fmt.Errorf("parse expiresAt: %w", err)
		}
		expiresAt = &t
	}

	return sharebus.NewShare{
		DashboardID:   dashboardID,
		UserID:        userID,
		Access:        access,
		ExportAllowed: app.ExportAllowed,
		ExpiresAt:     expiresAt,
	}, nil
}

// =============================================================================

// UpdateShare defines the data needed to update a share invite.
type UpdateShare struct {
	Access        *string `json:"access"`
	ExportAllowed *bool   `json:"exportAllowed"`
	ExpiresAt     *string `json:"expiresAt"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateShare) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusUpdateShare(app UpdateShare) (sharebus.UpdateShare, error) {
	us := sharebus.UpdateShare{
		ExportAllowed: app.ExportAllowed,
	}

	if app.Access != nil {
		access, err := accesslevel.ParseGrantable(*app.Access)
		if err != nil {
			return sharebus.UpdateShare{}, fmt.Errorf("parse access: %w", err)
		}
		us.Access = &access
	}

	if app.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *app.ExpiresAt)
		if err != nil {
			return sharebus.UpdateShare{}, fmt.Errorf("parse expiresAt: %w", err)
		}
		us.ExpiresAt = &t
	}

	return us, nil
}
