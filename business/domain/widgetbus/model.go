package widgetbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/types/widgetkey"
)

// Layout positions a widget on the dashboard grid. The grid is 12 columns
// wide; a widget spans between 1 and 12 columns and 1 and 20 rows.
type Layout struct {
	X int
	Y int
	W int
	H int
}

// Widget represents a single widget placed on a dashboard. Config holds the
// widget's key-value configuration and is sanitized on every write and read.
type Widget struct {
	ID          uuid.UUID
	DashboardID uuid.UUID
	Key         widgetkey.Key
	Title       string
	Config      map[string]any
	Layout      Layout
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWidget contains information needed to create a new widget.
type NewWidget struct {
	DashboardID uuid.UUID
	Key         widgetkey.Key
	Title       string
	Config      map[string]any
	Layout      Layout
}

// UpdateWidget contains information needed to update a widget.
type UpdateWidget struct {
	Title  *string
	Config map[string]any
	Layout *Layout
}
