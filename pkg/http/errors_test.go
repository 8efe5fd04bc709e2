package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAppErrorConstructors(t *testing.T) {
	cases := []struct {
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{NotFoundError("missing"), "ERR_NOT_FOUND", http.StatusNotFound},
		{NotFoundErrorf("instrument %s not found", "AAPL"), "ERR_NOT_FOUND", http.StatusNotFound},
		{BadRequestError("bad input"), "ERR_BAD_REQUEST", http.StatusBadRequest},
		{RateLimitedError("slow down"), "ERR_RATE_LIMITED", http.StatusTooManyRequests},
		{InternalError("boom"), "ERR_INTERNAL", http.StatusInternalServerError},
		{InternalErrorf("boom %d", 7), "ERR_INTERNAL", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if tc.err.Code != tc.wantCode || tc.err.Status != tc.wantStatus {
			t.Fatalf("%s: code=%s status=%d", tc.err.Message, tc.err.Code, tc.err.Status)
		}
	}
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("disk full")
	err := InternalError("Failed to load instruments").WithError(cause)

	if !errors.Is(err, cause) {
		t.Fatalf("wrapped cause not reachable through Unwrap")
	}
	if err.Error() != fmt.Sprintf("Failed to load instruments: %v", cause) {
		t.Fatalf("unexpected error text %q", err.Error())
	}

	bare := BadRequestError("bad input")
	if bare.Error() != "bad input" {
		t.Fatalf("unexpected error text %q", bare.Error())
	}
}

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if werr := AppErrorResponse(c, err); werr != nil {
		t.Fatalf("write response: %v", werr)
	}
	return rec
}

func TestAppErrorResponseStatusAndEnvelope(t *testing.T) {
	rec := respond(t, NotFoundError("instrument X not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}

	var env struct {
		Data    []json.RawMessage `json:"data"`
		Success bool              `json:"success"`
		Message string            `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Message != "instrument X not found" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if env.Data == nil || len(env.Data) != 0 {
		t.Fatalf("failure data must be an empty slice, got %v", env.Data)
	}
}

func TestAppErrorResponsePlainErrorFallsBackTo500(t *testing.T) {
	rec := respond(t, errors.New("unclassified"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
}
