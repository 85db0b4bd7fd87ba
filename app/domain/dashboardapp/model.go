package dashboardapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/types/name"
	"github.com/panelkit/panelkit/business/types/visibility"
)

// Dashboard represents the application model for a dashboard. The share
// token never appears here; it is returned once by the sharing endpoint.
type Dashboard struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"ownerId"`
	WorkspaceID  string   `json:"workspaceId,omitempty"`
	Name         string   `json:"name"`
	Visibility   string   `json:"visibility"`
	Tags         []string `json:"tags,omitempty"`
	ShareEnabled bool     `json:"shareEnabled"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (app Dashboard) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppDashboard(bus dashboardbus.Dashboard) Dashboard {
	var workspaceID string
	if bus.WorkspaceID != nil {
		workspaceID = bus.WorkspaceID.String()
	}

	return Dashboard{
		ID:           bus.ID.String(),
		OwnerID:      bus.OwnerID.String(),
		WorkspaceID:  workspaceID,
		Name:         bus.Name.String(),
		Visibility:   bus.Visibility.String(),
		Tags:         bus.Tags,
		ShareEnabled: bus.ShareEnabled,
		CreatedAt:    bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppDashboards(bus []dashboardbus.Dashboard) []Dashboard {
	app := make([]Dashboard, len(bus))
	for i, dsb := range bus {
		app[i] = toAppDashboard(dsb)
	}

	return app
}

// =============================================================================

// NewDashboard defines the data needed to create a dashboard.
type NewDashboard struct {
	Name        string   `json:"name" validate:"required,min=3,max=60"`
	Visibility  string   `json:"visibility" validate:"required"`
	WorkspaceID string   `json:"workspaceId" validate:"omitempty,uuid"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30,alphanumunicode"`
}

// Decode implements the web.Decoder interface.
func (app *NewDashboard) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewDashboard) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewDashboard(app NewDashboard, orgID uuid.UUID, ownerID uuid.UUID) (dashboardbus.NewDashboard, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return dashboardbus.NewDashboard{}, fmt.Errorf("parse name: %w", err)
	}

	vis, err := visibility.Parse(app.Visibility)
	if err != nil {
		return dashboardbus.NewDashboard{}, fmt.Errorf("parse visibility: %w", err)
	}

	var workspaceID *uuid.UUID
	if app.WorkspaceID != "" {
		id, err := uuid.Parse(app.WorkspaceID)
		if err != nil {
			return dashboardbus.NewDashboard{}, fmt.Errorf("parse workspaceID: %w", err)
		}
		workspaceID = &id
	}

	return dashboardbus.NewDashboard{
		OrgID:       orgID,
		OwnerID:     ownerID,
		WorkspaceID: workspaceID,
		Name:        nme,
		Visibility:  vis,
		Tags:        app.Tags,
	}, nil
}

// =============================================================================

// UpdateDashboard defines the data needed to update a dashboard.
type UpdateDashboard struct {
	Name       *string   `json:"name" validate:"omitempty,min=3,max=60"`
	Visibility *string   `json:"visibility"`
	Tags       *[]string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30,alphanumunicode"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateDashboard) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateDashboard) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateDashboard(app UpdateDashboard) (dashboardbus.UpdateDashboard, error) {
	var nme *name.Name
	if app.Name != nil {
		parsed, err := name.Parse(*app.Name)
		if err != nil {
			return dashboardbus.UpdateDashboard{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &parsed
	}

	var vis *visibility.Visibility
	if app.Visibility != nil {
		parsed, err := visibility.Parse(*app.Visibility)
		if err != nil {
			return dashboardbus.UpdateDashboard{}, fmt.Errorf("parse visibility: %w", err)
		}
		vis = &parsed
	}

	return dashboardbus.UpdateDashboard{
		Name:       nme,
		Visibility: vis,
		Tags:       app.Tags,
	}, nil
}

// =============================================================================

// EnableSharing defines the data needed to turn on the public share link.
type EnableSharing struct {
	ExpiresAt *string `json:"expiresAt"`
}

// Decode implements the web.Decoder interface.
func (app *EnableSharing) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

func toBusSharing(app EnableSharing) (dashboardbus.Sharing, error) {
	var expiresAt *time.Time
	if app.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *app.ExpiresAt)
		if err != nil {
			return dashboardbus.Sharing{}, fmt.Errorf("parse expiresAt: %w", err)
		}
		expiresAt = &t
	}

	return dashboardbus.Sharing{
		ExpiresAt: expiresAt,
	}, nil
}

// SharingResult carries the minted share link secret. This is the only place
// the token crosses the wire.
type SharingResult struct {
	ShareToken string `json:"shareToken"`
	ExpiresAt  string `json:"expiresAt,omitempty"`
}

// Encode implements the web.Encoder interface.
func (app SharingResult) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppSharingResult(bus dashboardbus.Dashboard) SharingResult {
	var token string
	if bus.ShareToken != nil {
		token = *bus.ShareToken
	}

	var expiresAt string
	if bus.ShareExpiresAt != nil {
		expiresAt = bus.ShareExpiresAt.Format(time.RFC3339)
	}

	return SharingResult{
		ShareToken: token,
		ExpiresAt:  expiresAt,
	}
}

// =============================================================================

// Widget represents the application model for a widget on a dashboard view.
type Widget struct {
	ID     string         `json:"id"`
	Key    string         `json:"key"`
	Title  string         `json:"title"`
	Config map[string]any `json:"config"`
	X      int            `json:"x"`
	Y      int            `json:"y"`
	W      int            `json:"w"`
	H      int            `json:"h"`
}

func toAppWidget(bus widgetbus.Widget) Widget {
	return Widget{
		ID:     bus.ID.String(),
		Key:    bus.Key.String(),
		Title:  bus.Title,
		Config: bus.Config,
		X:      bus.Layout.X,
		Y:      bus.Layout.Y,
		W:      bus.Layout.W,
		H:      bus.Layout.H,
	}
}

func toAppWidgets(bus []widgetbus.Widget) []Widget {
	app := make([]Widget, len(bus))
	for i, wdg := range bus {
		app[i] = toAppWidget(wdg)
	}

	return app
}

// DashboardView is a dashboard with its widgets, used by the public share
// endpoint and the export endpoint.
type DashboardView struct {
	Dashboard Dashboard `json:"dashboard"`
	Widgets   []Widget  `json:"widgets"`
}

// Encode implements the web.Encoder interface.
func (app DashboardView) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}
