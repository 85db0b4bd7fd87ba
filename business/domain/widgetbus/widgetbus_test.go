package widgetbus_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/sdk/sqldb"
	"github.com/panelkit/panelkit/business/types/widgetkey"
	"github.com/panelkit/panelkit/foundation/logger"
)

// memStore keeps widgets in a map so core behavior can be exercised without
// a database.
type memStore struct {
	widgets map[uuid.UUID]widgetbus.Widget
}

func newMemStore() *memStore {
	return &memStore{widgets: make(map[uuid.UUID]widgetbus.Widget)}
}

func (s *memStore) NewWithTx(tx sqldb.CommitRollbacker) (widgetbus.Storer, error) {
	return s, nil
}

func (s *memStore) Create(_ context.Context, wdg widgetbus.Widget) error {
	s.widgets[wdg.ID] = wdg
	return nil
}

func (s *memStore) Update(_ context.Context, wdg widgetbus.Widget) error {
	s.widgets[wdg.ID] = wdg
	return nil
}

func (s *memStore) Delete(_ context.Context, wdg widgetbus.Widget) error {
	delete(s.widgets, wdg.ID)
	return nil
}

func (s *memStore) QueryByID(_ context.Context, widgetID uuid.UUID) (widgetbus.Widget, error) {
	wdg, exists := s.widgets[widgetID]
	if !exists {
		return widgetbus.Widget{}, widgetbus.ErrNotFound
	}
	return wdg, nil
}

func (s *memStore) QueryByDashboard(_ context.Context, dashboardID uuid.UUID) ([]widgetbus.Widget, error) {
	var wdgs []widgetbus.Widget
	for _, wdg := range s.widgets {
		if wdg.DashboardID == dashboardID {
			wdgs = append(wdgs, wdg)
		}
	}
	return wdgs, nil
}

func newTestCore() (*widgetbus.Core, *memStore) {
	store := newMemStore()
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return widgetbus.NewCore(log, store), store
}

func TestCreateSanitizesConfig(t *testing.T) {
	t.Parallel()

	core, store := newTestCore()

	wdg, err := core.Create(context.Background(), widgetbus.NewWidget{
		DashboardID: uuid.New(),
		Key:         widgetkey.TextNote,
		Title:       "Notes",
		Config: map[string]any{
			"content": "release checklist",
			"align":   "left",
			"onload":  "fetch('//evil')",
		},
		Layout: widgetbus.Layout{X: 0, Y: 0, W: 6, H: 4},
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	want := map[string]any{
		"content": "release checklist",
		"align":   "left",
	}

	if diff := cmp.Diff(want, wdg.Config); diff != "" {
		t.Errorf("returned config mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(want, store.widgets[wdg.ID].Config); diff != "" {
		t.Errorf("stored config mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateRejectsBadLayout(t *testing.T) {
	t.Parallel()

	core, _ := newTestCore()

	layouts := []widgetbus.Layout{
		{X: -1, Y: 0, W: 4, H: 4},
		{X: 0, Y: -1, W: 4, H: 4},
		{X: 0, Y: 0, W: 0, H: 4},
		{X: 0, Y: 0, W: 13, H: 4},
		{X: 0, Y: 0, W: 4, H: 0},
		{X: 0, Y: 0, W: 4, H: 21},
	}

	for _, layout := range layouts {
		_, err := core.Create(context.Background(), widgetbus.NewWidget{
			DashboardID: uuid.New(),
			Key:         widgetkey.TextNote,
			Layout:      layout,
		})
		if !errors.Is(err, widgetbus.ErrInvalidLayout) {
			t.Errorf("layout %+v: expected ErrInvalidLayout, got %v", layout, err)
		}
	}
}

func TestQueryByDashboardResanitizes(t *testing.T) {
	t.Parallel()

	core, store := newTestCore()
	dashboardID := uuid.New()

	// Simulate a row written before the schema tightened: the stored config
	// carries a field the current schema no longer allows.
	stale := widgetbus.Widget{
		ID:          uuid.New(),
		DashboardID: dashboardID,
		Key:         widgetkey.TaskList,
		Config: map[string]any{
			"limit":      float64(10),
			"custom_sql": "select * from tasks",
		},
		Layout: widgetbus.Layout{W: 4, H: 4},
	}
	store.widgets[stale.ID] = stale

	wdgs, err := core.QueryByDashboard(context.Background(), dashboardID)
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	if len(wdgs) != 1 {
		t.Fatalf("got %d widgets, expected 1", len(wdgs))
	}

	want := map[string]any{"limit": float64(10)}
	if diff := cmp.Diff(want, wdgs[0].Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateReplacesConfig(t *testing.T) {
	t.Parallel()

	core, _ := newTestCore()

	wdg, err := core.Create(context.Background(), widgetbus.NewWidget{
		DashboardID: uuid.New(),
		Key:         widgetkey.ActivityFeed,
		Config:      map[string]any{"limit": float64(10), "scope": "project"},
		Layout:      widgetbus.Layout{W: 4, H: 4},
	})
	if err != nil {
		t.Fatalf("create: %s", err)
	}

	updated, err := core.Update(context.Background(), wdg, widgetbus.UpdateWidget{
		Config: map[string]any{"scope": "org", "injected": "{{x}}"},
	})
	if err != nil {
		t.Fatalf("update: %s", err)
	}

	want := map[string]any{"scope": "org"}
	if diff := cmp.Diff(want, updated.Config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
