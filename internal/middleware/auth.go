package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/questx-lab/questboard/internal/model"
	"github.com/questx-lab/questboard/pkg/authenticator"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// Authenticate verifies the bearer access token and stores it in the request context.
func Authenticate(engine authenticator.TokenEngine[model.AccessToken]) router.MiddlewareFunc {
	return func(ctx context.Context, req *http.Request) (context.Context, error) {
		auth, token, found := strings.Cut(req.Header.Get("Authorization"), " ")
		if !found || auth != "Bearer" || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		if info.UserID == "" || info.GuildID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithAccessToken(ctx, info), nil
	}
}
