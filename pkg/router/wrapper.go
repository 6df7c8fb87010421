package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := router.contextOf(c)

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = c.ShouldBindQuery(&req)
		case http.MethodPost:
			err = c.ShouldBindJSON(&req)
		default:
			err = errorx.New(errorx.BadRequest, "Unsupported method %s", method)
		}

		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			WriteError(c, http.StatusOK, errorx.New(errorx.BadRequest, "Invalid request"))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			WriteError(c, http.StatusOK, err)
			return
		}

		c.JSON(http.StatusOK, newResponse(resp))
	}
}

func wrapMiddleware(router *Router, middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := middleware(router.contextOf(c), c.Request)
		if err != nil {
			WriteError(c, http.StatusOK, err)
			c.Abort()
			return
		}

		// Keep only the request part, the root values are merged again by contextOf.
		if rc, ok := ctx.(requestContext); ok {
			ctx = rc.Context
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
