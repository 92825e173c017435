package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionCookie_Attributes(t *testing.T) {
	ck := SessionCookie("tok", DefaultSessionTTL, false)

	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Equal(t, "tok", ck.Value)
	assert.Equal(t, 604800, ck.MaxAge)

	s := ck.String()
	assert.Contains(t, s, "auth_token=tok")
	assert.Contains(t, s, "Path=/")
	assert.Contains(t, s, "Max-Age=604800")
	assert.Contains(t, s, "HttpOnly")
	assert.Contains(t, s, "SameSite=Lax")
	assert.NotContains(t, s, "Secure")

	assert.Contains(t, SessionCookie("tok", DefaultSessionTTL, true).String(), "Secure")
}

func TestClearSessionCookie(t *testing.T) {
	ck := ClearSessionCookie(true)

	assert.Equal(t, SessionCookieName, ck.Name)
	assert.Empty(t, ck.Value)
	assert.Less(t, ck.MaxAge, 0)

	s := ck.String()
	assert.Contains(t, s, "Max-Age=0")
	assert.Contains(t, s, "HttpOnly")
	assert.Contains(t, s, "Secure")
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, TokenFromRequest(req))

	req.AddCookie(&http.Cookie{Name: "other", Value: "x"})
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "abc.def.ghi"})
	assert.Equal(t, "abc.def.ghi", TokenFromRequest(req))
}
