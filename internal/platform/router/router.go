// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package router implements the ordered route table and the request dispatcher.

Routes are matched in registration order and the first match wins, so an
earlier `/lists/:id` shadows a later `/lists/archived`. This is the main
reason the API does not route through chi's radix tree, which always prefers
static segments.

Patterns:

  - Literal segments must match byte for byte.
  - A segment written `:name` captures exactly one non-empty path segment.
  - Methods are compared after upper-casing.

Usage:

	routes := router.New()
	routes.Route("/api/v1", func(api *router.Router) {
	    api.Get("/lists/:id", handler.get)
	    api.Post("/lists", handler.create, router.RequireJSON())
	})
	dispatcher := router.NewDispatcher(routes, logger)
*/
package router

import (
	"fmt"
	"net/http"
	"strings"
)

// Params maps capture names to the path segments they matched.
type Params map[string]string

// Response is what a handler hands back to the dispatcher for rendering.
// A zero Status means 200.
type Response struct {
	Status int
	Body   any
}

// OK builds a 200 response.
func OK(body any) Response { return Response{Status: http.StatusOK, Body: body} }

// Created builds a 201 response.
func Created(body any) Response { return Response{Status: http.StatusCreated, Body: body} }

// NoContent builds a 204 response with no body.
func NoContent() Response { return Response{Status: http.StatusNoContent} }

// HandlerFunc serves one matched route. Returned errors are rendered by the
// dispatcher; handlers never write to the transport themselves.
type HandlerFunc func(request *http.Request, params Params) (Response, error)

// RouteOption customizes a registered route.
type RouteOption func(*route)

// RequireJSON makes the dispatcher reject requests whose Content-Type is not
// application/json before the handler runs.
func RequireJSON() RouteOption {
	return func(r *route) { r.requireJSON = true }
}

type segment struct {
	literal string
	param   string
}

type route struct {
	method      string
	pattern     string
	segments    []segment
	handler     HandlerFunc
	requireJSON bool
}

type table struct {
	routes []*route
}

// Router registers routes into a shared, ordered table. Routers returned by
// [Router.Route] write into the same table with a path prefix.
//
// Registration is not safe for concurrent use; the table must be complete
// before the dispatcher starts serving.
type Router struct {
	table  *table
	prefix string
}

// New returns an empty Router.
func New() *Router {
	return &Router{table: &table{}}
}

// Route calls fn with a Router that prefixes every pattern with prefix.
func (r *Router) Route(prefix string, fn func(sub *Router)) {
	fn(&Router{table: r.table, prefix: r.prefix + strings.TrimSuffix(prefix, "/")})
}

// Handle registers handler for method and pattern. It panics on malformed
// patterns, which are programming errors caught at startup.
func (r *Router) Handle(method, pattern string, handler HandlerFunc, opts ...RouteOption) {
	full := r.prefix + pattern
	segments, err := compile(full)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}
	if handler == nil {
		panic(fmt.Sprintf("router: nil handler for %s %s", method, full))
	}

	entry := &route{
		method:   strings.ToUpper(method),
		pattern:  full,
		segments: segments,
		handler:  handler,
	}
	for _, opt := range opts {
		opt(entry)
	}

	r.table.routes = append(r.table.routes, entry)
}

// Get registers a GET route.
func (r *Router) Get(pattern string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(http.MethodGet, pattern, handler, opts...)
}

// Post registers a POST route.
func (r *Router) Post(pattern string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(http.MethodPost, pattern, handler, opts...)
}

// Patch registers a PATCH route.
func (r *Router) Patch(pattern string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(http.MethodPatch, pattern, handler, opts...)
}

// Delete registers a DELETE route.
func (r *Router) Delete(pattern string, handler HandlerFunc, opts ...RouteOption) {
	r.Handle(http.MethodDelete, pattern, handler, opts...)
}

// Match is the result of a successful lookup.
type Match struct {
	Method      string
	Pattern     string
	Params      Params
	Handler     HandlerFunc
	RequireJSON bool
}

// Match finds the first registered route for method and path.
func (r *Router) Match(method, path string) (*Match, bool) {
	method = strings.ToUpper(method)
	parts := strings.Split(path, "/")

	for _, entry := range r.table.routes {
		if entry.method != method {
			continue
		}
		if params, ok := entry.match(parts); ok {
			return &Match{
				Method:      entry.method,
				Pattern:     entry.pattern,
				Params:      params,
				Handler:     entry.handler,
				RequireJSON: entry.requireJSON,
			}, true
		}
	}

	return nil, false
}

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method  string
	Pattern string
}

// Routes lists the table in match order.
func (r *Router) Routes() []RouteInfo {
	infos := make([]RouteInfo, len(r.table.routes))
	for i, entry := range r.table.routes {
		infos[i] = RouteInfo{Method: entry.method, Pattern: entry.pattern}
	}
	return infos
}

func (entry *route) match(parts []string) (Params, bool) {
	if len(parts) != len(entry.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range entry.segments {
		part := parts[i]
		if seg.param == "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}

		if part == "" {
			return nil, false
		}
		if params == nil {
			params = Params{}
		}
		params[seg.param] = part
	}

	if params == nil {
		params = Params{}
	}
	return params, true
}

// compile splits a pattern on "/" and validates its captures.
func compile(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("pattern %q must begin with '/'", pattern)
	}

	parts := strings.Split(pattern, "/")
	segments := make([]segment, len(parts))
	seen := map[string]bool{}

	for i, part := range parts {
		if !strings.HasPrefix(part, ":") {
			segments[i] = segment{literal: part}
			continue
		}

		name := part[1:]
		if name == "" {
			return nil, fmt.Errorf("pattern %q has an unnamed capture", pattern)
		}
		if seen[name] {
			return nil, fmt.Errorf("pattern %q captures %q twice", pattern, name)
		}
		seen[name] = true
		segments[i] = segment{param: name}
	}

	return segments, nil
}
