package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iliyamo/task-manager/internal/service"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{&service.ValidationError{Msg: "title is required"}, http.StatusBadRequest, `{"error":"title is required"}`},
		{service.ErrConflict, http.StatusConflict, `{"error":"user already exists"}`},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid email or password"}`},
		{service.ErrNotAuthenticated, http.StatusUnauthorized, `{"error":"not authenticated"}`},
		{service.ErrNotFound, http.StatusNotFound, `{"error":"task not found"}`},
		{fmt.Errorf("%w: persist: disk full", service.ErrOperation), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{errors.New("anything else"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		assert.NoError(t, writeError(c, zap.NewNop(), tc.err))
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}

func TestWriteError_LogsOperationCause(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/v1/tasks", nil), rec)

	_ = writeError(c, zap.New(core), fmt.Errorf("%w: create task: disk full", service.ErrOperation))

	assert.NotContains(t, rec.Body.String(), "disk full")
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Contains(t, entries[0].ContextMap()["error"], "disk full")
	}
}

type fixedStats struct{ users, tasks int }

func (f fixedStats) Stats() (int, int) { return f.users, f.tasks }

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)
	assert.NoError(t, Health(fixedStats{3, 7})(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","users":3,"tasks":7}`, rec.Body.String())
}
