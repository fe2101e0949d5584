// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/cafe-go/internal/middleware"
	"github.com/olegiv/cafe-go/internal/render"
	"github.com/olegiv/cafe-go/internal/view"
)

// Routes holds everything needed to mount the application's pages.
type Routes struct {
	Sessions *scs.SessionManager
	Users    middleware.UserLoader
	Renderer *render.Renderer
	Views    *view.Registry

	Home    *HomeHandler
	Cafes   *CafesHandler
	Auth    *AuthHandler
	Profile *ProfileHandler

	// Optional; nil disables them.
	CSRF            func(http.Handler) http.Handler
	LoginProtection *middleware.LoginProtection
	SignupLimiter   *middleware.RateLimiter
}

// Mount registers the session-backed page routes on r. Sessions are loaded
// and the current user resolved before any of these handlers run.
// r must be the root router so the 404 page is installed for every path.
func (rt Routes) Mount(r chi.Router) {
	r.Group(func(r chi.Router) {
		if rt.CSRF != nil {
			r.Use(rt.CSRF)
		}
		r.Use(rt.Sessions.LoadAndSave)
		r.Use(middleware.LoadUser(rt.Users))
		r.Use(middleware.RequestPath)

		r.Get(RouteRoot, rt.Home.Home)

		r.Get(RouteCafes, rt.Views.ListHandler(KindCafe))
		r.Get(RouteCafesAdd, rt.Cafes.AddForm)
		r.Post(RouteCafesAdd, rt.Cafes.Add)
		r.Get(RouteCafeID, rt.Views.DetailHandler(KindCafe, ParamID))
		r.Get(RouteCafeEdit, rt.Cafes.EditForm)
		r.Post(RouteCafeEdit, rt.Cafes.Edit)

		r.Get(RouteCities, rt.Views.ListHandler(KindCity))
		r.Get(RouteCityCode, rt.Views.DetailHandler(KindCity, ParamCode))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RedirectIfAuthenticated(RouteRoot))
			r.With(optional(rt.SignupLimiter)).Get(RouteSignup, rt.Auth.SignupForm)
			r.With(optional(rt.SignupLimiter)).Post(RouteSignup, rt.Auth.Signup)
			r.With(optionalLogin(rt.LoginProtection)).Get(RouteLogin, rt.Auth.LoginForm)
			r.With(optionalLogin(rt.LoginProtection)).Post(RouteLogin, rt.Auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin(rt.Renderer))
			r.Post(RouteLogout, rt.Auth.Logout)
			r.Get(RouteProfile, rt.Profile.Show)
			r.Get(RouteProfileEdit, rt.Profile.EditForm)
			r.Post(RouteProfileEdit, rt.Profile.Edit)
		})

		r.NotFound(rt.Renderer.NotFound)
	})
}

func optional(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return passthrough
	}
	return rl.Middleware()
}

func optionalLogin(lp *middleware.LoginProtection) func(http.Handler) http.Handler {
	if lp == nil {
		return passthrough
	}
	return lp.Middleware()
}

func passthrough(next http.Handler) http.Handler { return next }
