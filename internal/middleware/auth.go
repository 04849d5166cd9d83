package middleware

import (
	"context"
	"strings"

	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/router"
	"github.com/questdrop/backend/pkg/xcontext"
)

type AuthVerifier struct{}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (verifier *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		authorization := xcontext.HTTPRequest(ctx).Header.Get("Authorization")
		token, found := strings.CutPrefix(authorization, "Bearer ")
		if !found || token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}
