package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-manager/internal/utils"
)

// UserIDKey is the echo.Context key holding the authenticated user id.
const UserIDKey = "user_id"

// SessionResolver maps a raw session cookie value to a user id.
type SessionResolver interface {
	ResolveSession(ctx context.Context, raw string) (string, bool)
}

// SessionAuth returns an Echo middleware that reads the session cookie,
// resolves it to a user id and stores the id in the context under
// UserIDKey.  Requests without a cookie are rejected with 401.  When the
// cookie is present but no longer valid (bad signature, expired, or the
// user is gone) the 401 response also clears it so the browser stops
// sending it.
func SessionAuth(sessions SessionResolver, secureCookies bool) echo.MiddlewareFunc {
	if sessions == nil {
		panic("nil resolver passed to SessionAuth")
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := utils.TokenFromRequest(c.Request())
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}
			userID, ok := sessions.ResolveSession(c.Request().Context(), raw)
			if !ok {
				c.SetCookie(utils.ClearSessionCookie(secureCookies))
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
			}
			c.Set(UserIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the id stored by SessionAuth, or "" when the request was
// not authenticated.
func UserID(c echo.Context) string {
	if s, ok := c.Get(UserIDKey).(string); ok {
		return s
	}
	return ""
}
