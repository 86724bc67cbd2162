package middleware

import (
	"context"

	"github.com/videodanza/backend/pkg/router"
	"github.com/videodanza/backend/pkg/xcontext"
)

func Logger() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if r := xcontext.HTTPRequest(ctx); r != nil {
			xcontext.Logger(ctx).Debugf("%s | %s", r.Method, r.URL.Path)
		}

		return ctx, nil
	}
}
