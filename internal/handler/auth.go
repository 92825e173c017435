package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/task-manager/internal/middleware"
	"github.com/iliyamo/task-manager/internal/service"
	"github.com/iliyamo/task-manager/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Auth          *service.AuthService
	SecureCookies bool
	Log           *zap.Logger
}

// NewAuthHandler panics when the service is missing.  secure sets the
// Secure flag on the session cookie.
func NewAuthHandler(auth *service.AuthService, secure bool, log *zap.Logger) *AuthHandler {
	if auth == nil {
		panic("nil service passed to NewAuthHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{Auth: auth, SecureCookies: secure, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account.  It does not log the user in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	u, err := h.Auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u})
}

// Login verifies credentials and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	sess, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	c.SetCookie(utils.SessionCookie(sess.Token.Token, h.Auth.SessionTTL(), h.SecureCookies))
	return c.JSON(http.StatusOK, echo.Map{"user": sess.User})
}

// Logout clears the session cookie.  It always succeeds.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Auth.Logout(c.Request().Context(), utils.TokenFromRequest(c.Request()))
	c.SetCookie(utils.ClearSessionCookie(h.SecureCookies))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated user.  Must run behind SessionAuth.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Auth.CurrentUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
