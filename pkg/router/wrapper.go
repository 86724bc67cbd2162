package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = ctx.ShouldBindQuery(&req)
		case http.MethodPost:
			err = ctx.ShouldBindJSON(&req)
		default:
			err = errors.New("unsupported method")
		}
		if err != nil {
			ctx.JSON(http.StatusBadRequest,
				newErrorResponse(errorx.New(errorx.BadRequest, "Cannot bind the request")))
			return
		}

		reqCtx := ctx.Request.Context()
		resp, err := handler(reqCtx, &req)
		if err != nil {
			xcontext.Logger(reqCtx).Warnf("%s %s | %v", method, ctx.FullPath(), err)
			ctx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		ctx.JSON(http.StatusOK, newResponse(resp))
	}
}

func wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		newCtx, err := middleware(ctx.Request.Context())
		if err != nil {
			ctx.JSON(http.StatusOK, newErrorResponse(err))
			ctx.Abort()
			return
		}

		if newCtx != nil {
			ctx.Request = ctx.Request.WithContext(newCtx)
		}
	}
}
