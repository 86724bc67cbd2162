package middleware

import (
	"context"
	"strings"

	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/pkg/authenticator"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/router"
	"github.com/videodanza/backend/pkg/xcontext"
)

// WithAccessToken resolves the caller principal from the Authorization
// header or the access token cookie and stores it in the context. Requests
// without a token pass through anonymously; domains decide whether
// anonymity is acceptable.
func WithAccessToken(engine authenticator.TokenEngine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		r := xcontext.HTTPRequest(ctx)
		if r == nil {
			return ctx, nil
		}

		token := ""
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name); err == nil {
			token = cookie.Value
		}

		if token == "" {
			return ctx, nil
		}

		accessToken, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.Address), nil
	}
}

// Authenticate rejects anonymous requests.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return ctx, nil
	}
}
