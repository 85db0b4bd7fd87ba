package accesslevel_test

import (
	"testing"

	"github.com/panelkit/panelkit/business/types/accesslevel"
)

func TestMeets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		level   accesslevel.Level
		minimum accesslevel.Level
		want    bool
	}{
		{"owner meets owner", accesslevel.Owner, accesslevel.Owner, true},
		{"owner meets view", accesslevel.Owner, accesslevel.View, true},
		{"edit meets view", accesslevel.Edit, accesslevel.View, true},
		{"view misses edit", accesslevel.View, accesslevel.Edit, false},
		{"none misses view", accesslevel.None, accesslevel.View, false},
		{"none meets none", accesslevel.None, accesslevel.None, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.Meets(tt.minimum); got != tt.want {
				t.Errorf("%s.Meets(%s) = %v, want %v", tt.level, tt.minimum, got, tt.want)
			}
		})
	}
}

func TestCap(t *testing.T) {
	t.Parallel()

	if got := accesslevel.Edit.Cap(accesslevel.View); !got.Equal(accesslevel.View) {
		t.Errorf("Edit.Cap(View) = %s, want VIEW", got)
	}

	if got := accesslevel.View.Cap(accesslevel.Edit); !got.Equal(accesslevel.View) {
		t.Errorf("View.Cap(Edit) = %s, want VIEW", got)
	}

	if got := accesslevel.None.Cap(accesslevel.View); !got.Equal(accesslevel.None) {
		t.Errorf("None.Cap(View) = %s, want NONE", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	level, err := accesslevel.Parse("OWNER")
	if err != nil {
		t.Fatalf("parse OWNER: %s", err)
	}
	if !level.Equal(accesslevel.Owner) {
		t.Errorf("parse OWNER = %s", level)
	}

	if _, err := accesslevel.Parse("SUPREME"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestParseGrantable(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"VIEW", "EDIT"} {
		if _, err := accesslevel.ParseGrantable(value); err != nil {
			t.Errorf("parse grantable %s: %s", value, err)
		}
	}

	// Shares may never carry ownership or the empty level.
	for _, value := range []string{"OWNER", "NONE", "view"} {
		if _, err := accesslevel.ParseGrantable(value); err == nil {
			t.Errorf("expected an error for %s", value)
		}
	}
}
