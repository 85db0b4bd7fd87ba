package accessbus

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/panelkit/panelkit/business/domain/dashboardbus"
)

// ErrBadShareToken is the single failure for the anonymous share path. A
// missing token, a disabled link, an expired link and a wrong secret all
// surface identically so an outside party learns nothing from the response.
var ErrBadShareToken = errors.New("invalid share token")

// VerifyShareToken gates anonymous access to a shared dashboard. It returns
// nil only when sharing is enabled, unexpired, and the presented token
// matches the stored one.
func VerifyShareToken(dsb dashboardbus.Dashboard, presented string, now time.Time) error {
	if presented == "" {
		return ErrBadShareToken
	}

	if !dsb.ShareEnabled || dsb.ShareToken == nil {
		return ErrBadShareToken
	}

	if dsb.ShareExpiresAt != nil && now.After(*dsb.ShareExpiresAt) {
		return ErrBadShareToken
	}

	if !tokensMatch(*dsb.ShareToken, presented) {
		return ErrBadShareToken
	}

	return nil
}

// tokensMatch compares the secrets in constant time. Both inputs are
// zero-padded to a common length so the comparison touches every byte
// regardless of where a mismatch sits, and the original lengths are checked
// with the same constant-time primitive before the verdicts are combined.
func tokensMatch(stored, presented string) bool {
	n := len(stored)
	if len(presented) > n {
		n = len(presented)
	}

	a := make([]byte, n)
	b := make([]byte, n)
	copy(a, stored)
	copy(b, presented)

	contentOK := subtle.ConstantTimeCompare(a, b)
	lengthOK := subtle.ConstantTimeEq(int32(len(stored)), int32(len(presented)))

	return contentOK&lengthOK == 1
}
