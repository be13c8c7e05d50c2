// Copyright (c) 2025 N3T Software
// SPDX-License-Identifier: MIT

package screens

// New builds the screen for a route. Screens are rebuilt on every
// navigation, so mounting always starts with a fresh fetch.
func New(route Route, deps Deps) Screen {
	switch route {
	case RouteLogin:
		return NewLogin(deps)
	case RouteRegister:
		return NewRegister(deps)
	case RouteForgot:
		return NewForgot(deps)
	case RouteItems:
		return NewItems(deps)
	case RouteTracking:
		return NewTracking(deps)
	case RouteStock:
		return NewStock(deps)
	case RouteSuppliers:
		return NewSuppliers(deps)
	case RouteReports:
		return NewReports(deps)
	default:
		return NewDashboard(deps)
	}
}
