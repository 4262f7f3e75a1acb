package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/orderdesk/accounts-api/internal/core/domain"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestResolveError_DomainMapping(t *testing.T) {
	log := zerolog.Nop()
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrUsernameTaken, http.StatusConflict, "username already taken"},
		{domain.ErrEmailTaken, http.StatusConflict, "email already registered"},
		{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrRoleNotFound, http.StatusNotFound, "role not found"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrAccountDisabled, http.StatusUnauthorized, "invalid credentials"},
	}
	for _, tc := range cases {
		code, msg := resolveError(tc.err, log, testContext())
		if code != tc.wantCode || msg != tc.wantMsg {
			t.Fatalf("%v: expected (%d, %q), got (%d, %q)", tc.err, tc.wantCode, tc.wantMsg, code, msg)
		}
	}
}

func TestResolveError_EchoErrorPassesThrough(t *testing.T) {
	code, msg := resolveError(echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), zerolog.Nop(), testContext())
	if code != http.StatusBadRequest || msg != "invalid payload" {
		t.Fatalf("expected (400, invalid payload), got (%d, %q)", code, msg)
	}
}

func TestResolveError_UnexpectedErrorIsGeneric(t *testing.T) {
	code, msg := resolveError(errors.New("pq: connection refused"), zerolog.Nop(), testContext())
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
