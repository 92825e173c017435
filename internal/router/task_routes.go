package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/handler"    // task handlers
	"github.com/iliyamo/task-manager/internal/middleware" // session middleware
)

// RegisterTasks registers the task endpoints under /v1/tasks.  All routes
// require a valid session cookie; the handlers only ever see the caller's
// own tasks.
func RegisterTasks(e *echo.Echo, t *handler.TaskHandler, sessions middleware.SessionResolver, secureCookies bool) {
	// Attach the session middleware at group construction time.
	g := e.Group("/v1/tasks", middleware.SessionAuth(sessions, secureCookies))

	g.GET("", t.List)
	g.POST("", t.Create)
	g.GET("/:id", t.Get)
	g.PUT("/:id", t.Update)   // merges the fields present in the body
	g.PATCH("/:id", t.Update) // alias for clients that use PATCH
	g.DELETE("/:id", t.Delete)
}
