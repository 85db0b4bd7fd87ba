package widgetbus_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/panelkit/panelkit/business/domain/widgetbus"
	"github.com/panelkit/panelkit/business/types/widgetkey"
)

func TestSanitizeConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		key         widgetkey.Key
		config      map[string]any
		want        map[string]any
		wantDropped []string
	}{
		{
			name: "clean config passes unchanged",
			key:  widgetkey.TaskList,
			config: map[string]any{
				"project_id":     "c7cbbb75-7d72-4b27-9a2f-5f85f61fca49",
				"limit":          float64(25),
				"show_completed": true,
			},
			want: map[string]any{
				"project_id":     "c7cbbb75-7d72-4b27-9a2f-5f85f61fca49",
				"limit":          float64(25),
				"show_completed": true,
			},
		},
		{
			name: "unknown fields dropped",
			key:  widgetkey.TaskList,
			config: map[string]any{
				"limit":   float64(10),
				"theme":   "dark",
				"onClick": "doThings()",
			},
			want:        map[string]any{"limit": float64(10)},
			wantDropped: []string{"onClick", "theme"},
		},
		{
			name:        "sql keyword in string",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "please DROP table users"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:   "keyword inside a larger word stays safe",
			key:    widgetkey.TextNote,
			config: map[string]any{"content": "the selected dropdown was updated gracefully"},
			want:   map[string]any{"content": "the selected dropdown was updated gracefully"},
		},
		{
			name:        "template interpolation",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "hello {{user.name}}"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:        "shell style interpolation",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "${HOME} sweet home"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:        "sql comment and statement separator",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "x; -- y"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:        "control characters",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "line1\x00line2"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:        "non ascii text",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "данные 日本語 café"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:        "fullwidth keyword lookalike",
			key:         widgetkey.TextNote,
			config:      map[string]any{"content": "ＳＥＬＥＣＴ * FROM users"},
			want:        map[string]any{},
			wantDropped: []string{"content"},
		},
		{
			name:        "nested object",
			key:         widgetkey.TaskList,
			config:      map[string]any{"project_id": map[string]any{"$ne": ""}},
			want:        map[string]any{},
			wantDropped: []string{"project_id"},
		},
		{
			name:        "nested array",
			key:         widgetkey.TaskList,
			config:      map[string]any{"project_id": []any{"a", "b"}},
			want:        map[string]any{},
			wantDropped: []string{"project_id"},
		},
		{
			name:        "number below range",
			key:         widgetkey.TaskList,
			config:      map[string]any{"limit": float64(0)},
			want:        map[string]any{},
			wantDropped: []string{"limit"},
		},
		{
			name:        "number above range",
			key:         widgetkey.TaskList,
			config:      map[string]any{"limit": float64(51)},
			want:        map[string]any{},
			wantDropped: []string{"limit"},
		},
		{
			name:   "integer accepted for a number field",
			key:    widgetkey.ActivityFeed,
			config: map[string]any{"limit": 20},
			want:   map[string]any{"limit": 20},
		},
		{
			name:        "nan rejected",
			key:         widgetkey.ActivityFeed,
			config:      map[string]any{"limit": math.NaN()},
			want:        map[string]any{},
			wantDropped: []string{"limit"},
		},
		{
			name:        "wrong type for boolean",
			key:         widgetkey.TaskList,
			config:      map[string]any{"show_completed": "true"},
			want:        map[string]any{},
			wantDropped: []string{"show_completed"},
		},
		{
			name:        "enum outside the permitted values",
			key:         widgetkey.MetricTrend,
			config:      map[string]any{"chart_type": "pie"},
			want:        map[string]any{},
			wantDropped: []string{"chart_type"},
		},
		{
			name:        "empty schema drops everything",
			key:         widgetkey.ProjectHealth,
			config:      map[string]any{"status": "ok"},
			want:        map[string]any{},
			wantDropped: []string{"status"},
		},
		{
			name:        "unregistered key sanitizes to empty",
			key:         widgetkey.Key{},
			config:      map[string]any{"anything": "goes"},
			want:        map[string]any{},
			wantDropped: []string{"anything"},
		},
		{
			name:        "dropped fields come back sorted",
			key:         widgetkey.ProjectHealth,
			config:      map[string]any{"zulu": 1, "alpha": 2, "mike": 3},
			want:        map[string]any{},
			wantDropped: []string{"alpha", "mike", "zulu"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := widgetbus.SanitizeConfig(tt.key, tt.config)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.wantDropped, dropped); diff != "" {
				t.Errorf("dropped mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSanitizeConfigIdempotent(t *testing.T) {
	t.Parallel()

	config := map[string]any{
		"metric":      "velocity",
		"window_days": float64(30),
		"chart_type":  "line",
		"evil":        "select * from secrets",
	}

	first, dropped := widgetbus.SanitizeConfig(widgetkey.MetricTrend, config)
	if len(dropped) != 1 || dropped[0] != "evil" {
		t.Fatalf("first pass dropped %v, expected [evil]", dropped)
	}

	second, dropped := widgetbus.SanitizeConfig(widgetkey.MetricTrend, first)
	if len(dropped) != 0 {
		t.Fatalf("second pass dropped %v, expected nothing", dropped)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second pass changed the config (-first +second):\n%s", diff)
	}
}

func TestSanitizeConfigDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	config := map[string]any{
		"content": "fine note",
		"evil":    "{{payload}}",
	}

	widgetbus.SanitizeConfig(widgetkey.TextNote, config)

	if _, exists := config["evil"]; !exists {
		t.Error("input map was mutated")
	}
	if len(config) != 2 {
		t.Errorf("input map has %d entries, expected 2", len(config))
	}
}
