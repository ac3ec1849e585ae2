// Package gateway wraps the grpc-gateway ServeMux with route groups and
// plain http middleware.
package gateway

import (
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"

	"github.com/hb-chen/safeskill/pkg/logger"
)

// HTTPMiddlewareFunc wraps the whole mux
type HTTPMiddlewareFunc func(http.HandlerFunc) http.HandlerFunc

// Gateway is an http.Handler around a grpc-gateway ServeMux
type Gateway struct {
	mux           *gwruntime.ServeMux
	premiddleware []HTTPMiddlewareFunc
	middleware    []HTTPMiddlewareFunc
}

// New creates a gateway with the given ServeMux options
func New(opts ...gwruntime.ServeMuxOption) *Gateway {
	return &Gateway{mux: gwruntime.NewServeMux(opts...)}
}

// Mux returns the underlying ServeMux
func (gw *Gateway) Mux() *gwruntime.ServeMux {
	return gw.mux
}

func applyMiddleware(h http.HandlerFunc, middleware ...HTTPMiddlewareFunc) http.HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// ServeHTTP runs pre-middleware, then middleware, then the mux
func (gw *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := applyMiddleware(gw.mux.ServeHTTP, gw.middleware...)
	h = applyMiddleware(h, gw.premiddleware...)
	h(w, r)
}

// Use adds middleware to the chain which is run after pre-middleware.
func (gw *Gateway) Use(middleware ...HTTPMiddlewareFunc) {
	gw.middleware = append(gw.middleware, middleware...)
}

// Pre adds middleware to the chain which is run first.
func (gw *Gateway) Pre(middleware ...HTTPMiddlewareFunc) {
	gw.premiddleware = append(gw.premiddleware, middleware...)
}

// MiddlewareFunc wraps a single route handler
type MiddlewareFunc func(gwruntime.HandlerFunc) gwruntime.HandlerFunc

// Group creates a route group under prefix
func (gw *Gateway) Group(prefix string, m ...MiddlewareFunc) (g *Group) {
	g = &Group{
		prefix: prefix,
		gw:     gw,
	}
	g.Use(m...)
	return
}

// Group registers routes sharing a path prefix and middleware
type Group struct {
	prefix     string
	gw         *Gateway
	middleware []MiddlewareFunc
}

// Mux returns the underlying ServeMux
func (g *Group) Mux() *gwruntime.ServeMux {
	return g.gw.mux
}

// Use appends route middleware for routes added afterwards
func (g *Group) Use(middleware ...MiddlewareFunc) {
	g.middleware = append(g.middleware, middleware...)
}

func (g *Group) GET(path string, h gwruntime.HandlerFunc, m ...MiddlewareFunc) {
	g.add(http.MethodGet, path, h, m...)
}

func (g *Group) POST(path string, h gwruntime.HandlerFunc, m ...MiddlewareFunc) {
	g.add(http.MethodPost, path, h, m...)
}

func (g *Group) PUT(path string, h gwruntime.HandlerFunc, m ...MiddlewareFunc) {
	g.add(http.MethodPut, path, h, m...)
}

func (g *Group) DELETE(path string, h gwruntime.HandlerFunc, m ...MiddlewareFunc) {
	g.add(http.MethodDelete, path, h, m...)
}

func (g *Group) add(method, path string, h gwruntime.HandlerFunc, m ...MiddlewareFunc) {
	middleware := make([]MiddlewareFunc, 0, len(g.middleware)+len(m))
	middleware = append(middleware, g.middleware...)
	middleware = append(middleware, m...)

	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	if err := g.gw.mux.HandlePath(method, g.prefix+path, h); err != nil {
		logger.Errorf("Failed to register route %s %s: %v", method, g.prefix+path, err)
	}
}
