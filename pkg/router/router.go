package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a derived context which the following
// middlewares and the handler receive.
type MiddlewareFunc func(ctx context.Context, req *http.Request) (context.Context, error)

type Router struct {
	root   context.Context
	engine *gin.Engine
	inner  gin.IRouter
}

// New returns a router whose handlers see every value of root (configs, logger, database) in
// addition to the values of the request.
func New(root context.Context) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		root:   root,
		engine: engine,
		inner:  engine,
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Use appends raw gin middlewares.
func (r *Router) Use(handlers ...gin.HandlerFunc) {
	r.inner.Use(handlers...)
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.inner.Use(wrapMiddleware(r, middleware))
}

// Branch returns a router sharing the routes of r whose middlewares do not leak back into r.
func (r *Router) Branch() *Router {
	return &Router{
		root:   r.root,
		engine: r.engine,
		inner:  r.inner.Group(""),
	}
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
