package widgetapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/types/widgetkey"
)

// Widget represents the application model for a widget.
type Widget struct {
	ID          string         `json:"id"`
	DashboardID string         `json:"dashboardId"`
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Config      map[string]any `json:"config"`
	X           int            `json:"x"`
	Y           int            `json:"y"`
	W           int            `json:"w"`
	H           int            `json:"h"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

// Encode implements the web.Encoder interface.
func (app Widget) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppWidget(bus widgetbus.Widget) Widget {
	return Widget{
		ID:          bus.ID.String(),
		DashboardID: bus.DashboardID.String(),
		Key:         bus.Key.String(),
		Title:       bus.Title,
		Config:      bus.Config,
		X:           bus.Layout.X,
		Y:           bus.Layout.Y,
		W:           bus.Layout.W,
		H:           bus.Layout.H,
		CreatedAt:   bus.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   bus.UpdatedAt.Format(time.RFC3339),
	}
}

// Widgets is the collection encoder for widget lists.
type Widgets []Widget

// Encode implements the web.Encoder interface.
func (app Widgets) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppWidgets(bus []widgetbus.Widget) Widgets {
	app := make(Widgets, len(bus))
	for i, wdg := range bus {
		app[i] = toAppWidget(wdg)
	}

	return app
}

// =============================================================================

// NewWidget defines the data needed to add a widget to a dashboard. An
// unknown key is rejected with a visible error rather than silently dropped;
// a widget that would never render is a mistake the caller must see.
type NewWidget struct {
	Key    string         `json:"key" validate:"required"`
	Title  string         `json:"title" validate:"required,max=120"`
	Config map[string]any `json:"config"`
	X      int            `json:"x" validate:"min=0"`
	Y      int            `json:"y" validate:"min=0"`
	W      int            `json:"w" validate:"required,min=1,max=12"`
	H      int            `json:"h" validate:"required,min=1,max=20"`
}

// Decode implements the web.Decoder interface.
func (app *NewWidget) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewWidget) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewWidget(app NewWidget, dashboardID uuid.UUID) (widgetbus.NewWidget, error) {
	key, err := widgetkey.Parse(app.Key)
	if err != nil {
		return widgetbus.NewWidget{}, fmt.Errorf("parse key: %w", err)
	}

	return widgetbus.NewWidget{
		DashboardID: dashboardID,
		Key:         key,
		Title:       app.Title,
		Config:      app.Config,
		Layout: widgetbus.Layout{
			X: app.X,
			Y: app.Y,
			W: app.W,
			H: app.H,
		},
	}, nil
}

// =============================================================================

// UpdateWidget defines the data needed to update a widget. The key is fixed
// for the widget's lifetime.
type UpdateWidget struct {
	Title  *string        `json:"title" validate:"omitempty,max=120"`
	Config map[string]any `json:"config"`
	X      *int           `json:"x" validate:"omitempty,min=0"`
	Y      *int           `json:"y" validate:"omitempty,min=0"`
	W      *int           `json:"w" validate:"omitempty,min=1,max=12"`
	H      *int           `json:"h" validate:"omitempty,min=1,max=20"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateWidget) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateWidget) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateWidget(app UpdateWidget, current widgetbus.Widget) widgetbus.UpdateWidget {
	uw := widgetbus.UpdateWidget{
		Title:  app.Title,
		Config: app.Config,
	}

	if app.X != nil || app.Y != nil || app.W != nil || app.H != nil {
		layout := current.Layout

		if app.X != nil {
			layout.X = *app.X
		}
		if app.Y != nil {
			layout.Y = *app.Y
		}
		if app.W != nil {
			layout.W = *app.W
		}
		if app.H != nil {
			layout.H = *app.H
		}

		uw.Layout = &layout
	}

	return uw
}
