// Package accesslevel represents the ranked dashboard access level type in
// the system.
package accesslevel

import "fmt"

// The set of access levels that can be used. Levels are totally ordered:
// None < View < Edit < Owner.
var (
	None  = newLevel(0, "NONE")
	View  = newLevel(1, "VIEW")
	Edit  = newLevel(2, "EDIT")
	Owner = newLevel(3, "OWNER")
)

// =============================================================================

// Set of known levels.
var levels = make(map[string]Level)

// Level represents a ranked access level in the system.
type Level struct {
	rank  int
	value string
}

func newLevel(rank int, level string) Level {
	l := Level{rank, level}
	levels[level] = l
	return l
}

// String returns the name of the level.
func (l Level) String() string {
	return l.value
}

// Equal provides support for the go-cmp package and testing.
func (l Level) Equal(l2 Level) bool {
	return l.rank == l2.rank
}

// Meets reports whether the level satisfies the specified minimum level.
func (l Level) Meets(minimum Level) bool {
	return l.rank >= minimum.rank
}

// Cap returns the lesser of the level and the specified ceiling.
func (l Level) Cap(ceiling Level) Level {
	if l.rank > ceiling.rank {
		return ceiling
	}
	return l
}

// MarshalText provides support for logging and any marshal needs.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.value), nil
}

// =============================================================================

// Parse parses the string value and returns a level if one exists.
func Parse(value string) (Level, error) {
	level, exists := levels[value]
	if !exists {
		return Level{}, fmt.Errorf("invalid access level %q", value)
	}

	return level, nil
}

// MustParse parses the string value and returns a level if one exists. If
// an error occurs the function panics.
func MustParse(value string) Level {
	level, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return level
}

// ParseGrantable parses the string value and returns a level if it is one of
// the levels a share record may carry. Only View and Edit can be granted by
// an invite.
func ParseGrantable(value string) (Level, error) {
	level, err := Parse(value)
	if err != nil {
		return Level{}, err
	}

	if !level.Equal(View) && !level.Equal(Edit) {
		return Level{}, fmt.Errorf("access level %q cannot be granted by a share", value)
	}

	return level, nil
}
