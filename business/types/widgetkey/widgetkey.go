// Package widgetkey represents the widget key type in the system. The set of
// keys is a fixed allowlist; a widget with any other key is rejected at
// write time.
package widgetkey

import "fmt"

// The set of widget keys that can be used.
var (
	ProjectHealth = newKey("project_health")
	TaskList      = newKey("task_list")
	BurndownChart = newKey("burndown_chart")
	MetricSingle  = newKey("metric_single")
	MetricTrend   = newKey("metric_trend")
	TextNote      = newKey("text_note")
	ActivityFeed  = newKey("activity_feed")
)

// =============================================================================

// Set of known widget keys.
var keys = make(map[string]Key)

// Key represents a widget key in the system.
type Key struct {
	value string
}

func newKey(key string) Key {
	k := Key{key}
	keys[key] = k
	return k
}

// String returns the name of the widget key.
func (k Key) String() string {
	return k.value
}

// Equal provides support for the go-cmp package and testing.
func (k Key) Equal(k2 Key) bool {
	return k.value == k2.value
}

// MarshalText provides support for logging and any marshal needs.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.value), nil
}

// =============================================================================

// Parse parses the string value and returns a widget key if one exists.
func Parse(value string) (Key, error) {
	key, exists := keys[value]
	if !exists {
		return Key{}, fmt.Errorf("invalid widget key %q", value)
	}

	return key, nil
}

// MustParse parses the string value and returns a widget key if one exists.
// If an error occurs the function panics.
func MustParse(value string) Key {
	key, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return key
}
