package mid

import (
	"context"
	"net/http"
	"time"

	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = path + "?" + r.URL.RawQuery
			}

			log.Info(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			var statusCode = errorCode(resp)
			log.Info(ctx, "request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr,
				"statuscode", statusCode, "since", time.Since(now).String())

			return resp
		}

		return h
	}

	return m
}

func errorCode(resp web.Encoder) int {
	if resp == nil {
		return http.StatusOK
	}

	if hs, ok := resp.(interface{ HTTPStatus() int }); ok {
		return hs.HTTPStatus()
	}

	if _, ok := resp.(error); ok {
		return http.StatusInternalServerError
	}

	return http.StatusOK
}
