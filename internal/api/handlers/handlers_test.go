package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linyc/twmonitor/pkg/config"
	"github.com/linyc/twmonitor/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func TestMonitorRun_Unauthorized(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
	}{
		{name: "missing header", secret: "s3cret", header: ""},
		{name: "wrong token", secret: "s3cret", header: "Bearer wrong"},
		{name: "missing bearer prefix", secret: "s3cret", header: "s3cret"},
		{name: "empty secret rejects everything", secret: "", header: "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMonitorHandler(nil, tt.secret, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/monitor/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.Run(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Unauthorized") {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

type fakeTokenStore struct {
	token string
	err   error
}

func (f *fakeTokenStore) SetLineToken(ctx context.Context, token string) error {
	f.token = token
	return f.err
}

func TestSaveToken(t *testing.T) {
	store := &fakeTokenStore{}
	handler := NewTokenHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/notify/token",
		strings.NewReader(`{"token": "new-line-token"}`))
	rec := httptest.NewRecorder()

	handler.SaveToken(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if store.token != "new-line-token" {
		t.Errorf("stored token = %q", store.token)
	}
}

func TestSaveToken_MissingToken(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty token", body: `{"token": ""}`},
		{name: "no token field", body: `{}`},
		{name: "malformed json", body: `{token`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTokenHandler(&fakeTokenStore{}, testLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/notify/token",
				strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.SaveToken(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Token is required") {
				t.Errorf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestSaveToken_StoreError(t *testing.T) {
	store := &fakeTokenStore{err: errors.New("redis unavailable")}
	handler := NewTokenHandler(store, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/notify/token",
		strings.NewReader(`{"token": "t"}`))
	rec := httptest.NewRecorder()

	handler.SaveToken(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
