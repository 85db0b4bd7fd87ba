package mid

import (
	"context"
	"net/http"
	"runtime/debug"

	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/app/sdk/metrics"
	"github.com/panelkit/panelkit/business/sdk/web"
)

// Panics recovers from a panicking handler and turns the panic into an
// error so it flows through Errors and bumps the panic counter.
func Panics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) (resp web.Encoder) {

			// The recover must run in a deferred function so it can rewrite
			// the named return value after the handler has unwound.
			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					resp = errs.Errorf(errs.InternalOnlyLog, "PANIC [%v] TRACE[%s]", rec, string(trace))

					metrics.AddPanics(ctx)
				}
			}()

			return next(ctx, r)
		}

		return h
	}

	return m
}
