package middleware

import (
	"context"

	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
)

// Logger writes a per-request line after the response is sent. In non-local
// environments successful requests are logged at debug level to keep the
// output readable.
func Logger(env string) router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		if err := xcontext.Error(ctx); err != nil {
			xcontext.Logger(ctx).Errorf("%s %s | %v", req.Method, req.URL.Path, err)
			return
		}

		if env == "local" {
			xcontext.Logger(ctx).Infof("%s %s | success", req.Method, req.URL.Path)
		} else {
			xcontext.Logger(ctx).Debugf("%s %s | success", req.Method, req.URL.Path)
		}
	}
}
