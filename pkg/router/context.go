package router

import (
	"context"

	"github.com/gin-gonic/gin"
)

// requestContext lives as long as the request but falls back to the values of the root context.
type requestContext struct {
	context.Context
	root context.Context
}

func (c requestContext) Value(key any) any {
	if v := c.Context.Value(key); v != nil {
		return v
	}

	return c.root.Value(key)
}

func (r *Router) contextOf(c *gin.Context) context.Context {
	return requestContext{Context: c.Request.Context(), root: r.root}
}
