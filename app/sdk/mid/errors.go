package mid

import (
	"context"
	"net/http"

	"github.com/panelkit/panelkit/app/sdk/errs"
	"github.com/panelkit/panelkit/business/sdk/web"
	"github.com/panelkit/panelkit/foundation/logger"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a uniform way.
// Unexpected errors (status >= 500) are logged.
func Errors(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			resp := next(ctx, r)

			err := checkIsError(resp)
			if err == nil {
				return resp
			}

			if errs.IsFieldErrors(err) {
				log.Error(ctx, "handled validation error during request", "err", err)
				return errs.GetFieldErrors(err)
			}

			var appErr *errs.Error
			if !errs.IsError(err) {
				appErr = errs.Newf(errs.Internal, "%s", err)
			} else {
				appErr = errs.GetError(err)
			}

			log.Error(ctx, "handled error during request",
				"err", err,
				"source_err_file", appErr.FileName,
				"source_err_func", appErr.FuncName)

			// Encoding masks InternalOnlyLog details before they cross the
			// wire, so the full error can be returned here.
			return appErr
		}

		return h
	}

	return m
}
