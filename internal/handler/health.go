package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatsSource reports collection sizes.  *repository.Store implements it.
type StatsSource interface {
	Stats() (users, tasks int)
}

// Health is a health-check endpoint used by load balancers and monitoring
// systems.  It answers 200 with the current user and task counts.
func Health(store StatsSource) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, tasks := store.Stats()
		return c.JSON(http.StatusOK, echo.Map{
			"status": "ok",
			"users":  users,
			"tasks":  tasks,
		})
	}
}
