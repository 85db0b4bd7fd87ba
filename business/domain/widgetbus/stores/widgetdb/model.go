package widgetdb

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/types/widgetkey"
)

type widgetDB struct {
	ID          uuid.UUID       `db:"widget_id"`
	DashboardID uuid.UUID       `db:"dashboard_id"`
	Key         string          `db:"widget_key"`
	Title       string          `db:"title"`
	Config      json.RawMessage `db:"config"`
	PosX        int             `db:"pos_x"`
	PosY        int             `db:"pos_y"`
	Width       int             `db:"width"`
	Height      int             `db:"height"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func toDBWidget(bus widgetbus.Widget) (widgetDB, error) {
	config, err := json.Marshal(bus.Config)
	if err != nil {
		return widgetDB{}, fmt.Errorf("marshal config: %w", err)
	}

	db := widgetDB{
		ID:          bus.ID,
		DashboardID: bus.DashboardID,
		Key:         bus.Key.String(),
		Title:       bus.Title,
		Config:      config,
		PosX:        bus.Layout.X,
		PosY:        bus.Layout.Y,
		Width:       bus.Layout.W,
		Height:      bus.Layout.H,
		CreatedAt:   bus.CreatedAt.UTC(),
		UpdatedAt:   bus.UpdatedAt.UTC(),
	}

	return db, nil
}

func toBusWidget(db widgetDB) (widgetbus.Widget, error) {
	key, err := widgetkey.Parse(db.Key)
	if err != nil {
		return widgetbus.Widget{}, fmt.Errorf("parse widget key: %w", err)
	}

	var config map[string]any
	if len(db.Config) > 0 {
		if err := json.Unmarshal(db.Config, &config); err != nil {
			return widgetbus.Widget{}, fmt.Errorf("unmarshal config: %w", err)
		}
	}

	bus := widgetbus.Widget{
		ID:          db.ID,
		DashboardID: db.DashboardID,
		Key:         key,
		Title:       db.Title,
		Config:      config,
		Layout: widgetbus.Layout{
			X: db.PosX,
			Y: db.PosY,
			W: db.Width,
			H: db.Height,
		},
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusWidgets(dbs []widgetDB) ([]widgetbus.Widget, error) {
	bus := make([]widgetbus.Widget, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusWidget(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
