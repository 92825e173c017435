package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/task-manager/internal/handler"    // import the handlers that translate HTTP to service calls
	"github.com/iliyamo/task-manager/internal/middleware" // import middleware for session authentication
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo, store handler.StatsSource) {
	// Map GET /healthz to the Health handler.  Load balancers and monitoring
	// use it to verify that the service is up; it also reports store counts.
	e.GET("/healthz", handler.Health(store))
}

// RegisterAuth registers all authentication-related routes under /v1/auth.
// limiter wraps the credential endpoints (register and login) and may be a
// pass-through.  /me needs a valid session cookie.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, sessions middleware.SessionResolver, limiter echo.MiddlewareFunc) {
	// Create a route group under the /v1/auth prefix.
	g := e.Group("/v1/auth")
	// Registration creates the account but does not set a cookie.
	g.POST("/register", a.Register, limiter)
	// Login verifies credentials and sets the auth_token cookie.
	g.POST("/login", a.Login, limiter)
	// Logout always succeeds and clears the cookie, with or without a session.
	g.POST("/logout", a.Logout)
	// The current user; an invalid cookie is cleared in the 401 response.
	g.GET("/me", a.Me, middleware.SessionAuth(sessions, a.SecureCookies))
}
