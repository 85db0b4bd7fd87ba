package widgetbus

import "github.com/panelkit/panelkit/business/types/widgetkey"

// fieldKind enumerates the value shapes a config field may take. Anything
// outside these shapes, nested objects and arrays included, is dropped.
type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindBoolean
	kindEnum
)

// fieldSpec describes one allowed config field for a widget key.
type fieldSpec struct {
	kind   fieldKind
	maxLen int      // strings: maximum length, 0 means no limit beyond the global cap
	min    float64  // numbers: inclusive lower bound
	max    float64  // numbers: inclusive upper bound
	values []string // enums: the permitted values
}

// configSchemas is the per-key allowlist. A field absent from a key's schema
// is dropped no matter how harmless it looks. A key absent from this registry
// sanitizes to an empty config.
var configSchemas = map[widgetkey.Key]map[string]fieldSpec{
	widgetkey.ProjectHealth: {},
	widgetkey.TaskList: {
		"project_id":     {kind: kindString, maxLen: 36},
		"limit":          {kind: kindNumber, min: 1, max: 50},
		"show_completed": {kind: kindBoolean},
	},
	widgetkey.BurndownChart: {
		"sprint_id": {kind: kindString, maxLen: 36},
		"unit":      {kind: kindEnum, values: []string{"points", "tasks"}},
	},
	widgetkey.MetricSingle: {
		"metric":    {kind: kindEnum, values: []string{"open_tasks", "closed_tasks", "velocity", "cycle_time"}},
		"label":     {kind: kindString, maxLen: 60},
		"precision": {kind: kindNumber, min: 0, max: 4},
	},
	widgetkey.MetricTrend: {
		"metric":      {kind: kindEnum, values: []string{"open_tasks", "closed_tasks", "velocity", "cycle_time"}},
		"window_days": {kind: kindNumber, min: 1, max: 365},
		"chart_type":  {kind: kindEnum, values: []string{"line", "bar", "area"}},
	},
	widgetkey.TextNote: {
		"content": {kind: kindString, maxLen: 2000},
		"align":   {kind: kindEnum, values: []string{"left", "center", "right"}},
	},
	widgetkey.ActivityFeed: {
		"limit": {kind: kindNumber, min: 1, max: 100},
		"scope": {kind: kindEnum, values: []string{"project", "workspace", "org"}},
	},
}
