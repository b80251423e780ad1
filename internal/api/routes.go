// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import "github.com/taibuivan/todo/internal/platform/router"

// RouteRegistrar is implemented by every domain handler set.
type RouteRegistrar interface {
	RegisterRoutes(routes *router.Router)
}

// NewRouteTable mounts the registrars under prefix in the given order.
//
// Order is match priority, so registrars with literal segments that could
// collide with another's parameters must come first.
func NewRouteTable(prefix string, registrars ...RouteRegistrar) *router.Router {
	routes := router.New()
	routes.Route(prefix, func(api *router.Router) {
		for _, registrar := range registrars {
			registrar.RegisterRoutes(api)
		}
	})
	return routes
}
