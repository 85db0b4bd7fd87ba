package accessbus_test

import (
	"errors"
	"testing"
	"time"

	"github.com/panelkit/panelkit/business/domain/accessbus"
	"github.com/panelkit/panelkit/business/domain/dashboardbus"
)

func TestVerifyShareToken(t *testing.T) {
	t.Parallel()

	token := "yJx1uQ8dZ4vGm0TqfLr2wAeKs6BhN9pc"
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	shared := dashboardbus.Dashboard{
		ShareEnabled: true,
		ShareToken:   &token,
	}

	expiring := shared
	expiring.ShareExpiresAt = &future

	expired := shared
	expired.ShareExpiresAt = &past

	disabled := shared
	disabled.ShareEnabled = false

	tests := []struct {
		name      string
		dsb       dashboardbus.Dashboard
		presented string
		wantErr   bool
	}{
		{"exact match", shared, token, false},
		{"match before expiry", expiring, token, false},
		{"empty token", shared, "", true},
		{"sharing disabled", disabled, token, true},
		{"no stored token", dashboardbus.Dashboard{ShareEnabled: true}, token, true},
		{"expired link", expired, token, true},
		{"wrong token same length", shared, "yJx1uQ8dZ4vGm0TqfLr2wAeKs6BhN9pC", true},
		{"trailing whitespace", shared, token + " ", true},
		{"stored token is a prefix", shared, token + "x", true},
		{"presented token is a prefix", shared, token[:len(token)-1], true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accessbus.VerifyShareToken(tt.dsb, tt.presented, now)

			if tt.wantErr {
				if !errors.Is(err, accessbus.ErrBadShareToken) {
					t.Fatalf("expected ErrBadShareToken, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
		})
	}
}
