package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdrop/backend/pkg/errorx"
	"github.com/questdrop/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := xcontext.WithHTTPRequest(router.ctx, gctx.Request)
		ctx = xcontext.WithRequestState(ctx)

		defer func() {
			for _, closer := range router.closers {
				closer(ctx)
			}
		}()

		for _, middleware := range router.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				writeJSON(gctx.Writer, newErrorResponse(err))
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		case http.MethodPost:
			err = gctx.ShouldBindJSON(&req)
		}

		if err != nil {
			err = errorx.New(errorx.BadRequest, "Cannot bind the request")
			xcontext.SetError(ctx, err)
			writeJSON(gctx.Writer, newErrorResponse(err))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeJSON(gctx.Writer, newErrorResponse(err))
			return
		}

		xcontext.SetResponse(ctx, resp)
		for _, middleware := range router.afters {
			if newCtx, err := middleware(ctx); err != nil {
				xcontext.Logger(ctx).Errorf("After middleware failed: %v", err)
			} else if newCtx != nil {
				ctx = newCtx
			}
		}

		writeJSON(gctx.Writer, newResponse(resp))
	}
}
