package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questdrop/backend/config"
	"github.com/rs/cors"
	"golang.org/x/exp/slices"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a derived context
// which replaces the request context for the rest of the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs after the response is written, regardless of the
// handler outcome.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx    context.Context
	engine *gin.Engine

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{ctx: ctx, engine: gin.New()}
}

// Branch returns a router sharing the same underlying engine but with an
// independent middleware chain.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		engine:  r.engine,
		befores: slices.Clone(r.befores),
		afters:  slices.Clone(r.afters),
		closers: slices.Clone(r.closers),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(relativePath, root string) {
	r.engine.Static(relativePath, root)
}

func (r *Router) Handler(cfg config.ServerConfigs) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return c.Handler(r.engine)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
