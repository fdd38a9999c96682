package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"daily-diet/models"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type fakeResolver struct {
	users map[string]*models.User
	err   error
}

func (f fakeResolver) GetBySession(_ context.Context, sessionID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.users[sessionID], nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	id, ok := UserID(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusTeapot)
		return
	}
	w.Write([]byte(id))
}

func TestSessionAuth(t *testing.T) {
	resolver := fakeResolver{users: map[string]*models.User{
		"good-session": {ID: "user-1"},
	}}
	handler := SessionAuth(resolver, quietLogger())(http.HandlerFunc(echoUserID))

	tests := []struct {
		name     string
		cookie   *http.Cookie
		wantCode int
		wantBody string
	}{
		{"NoCookie", nil, http.StatusUnauthorized, ""},
		{"EmptyCookie", &http.Cookie{Name: SessionCookie, Value: ""}, http.StatusUnauthorized, ""},
		{"UnknownSession", &http.Cookie{Name: SessionCookie, Value: "bad"}, http.StatusUnauthorized, ""},
		{"OtherCookieName", &http.Cookie{Name: "session", Value: "good-session"}, http.StatusUnauthorized, ""},
		{"ValidSession", &http.Cookie{Name: SessionCookie, Value: "good-session"}, http.StatusOK, "user-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/meals", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("Expected status %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("Expected body %q, got %q", tt.wantBody, w.Body.String())
			}
			if tt.wantCode == http.StatusUnauthorized {
				var body map[string]string
				json.NewDecoder(w.Body).Decode(&body)
				if body["error"] == "" {
					t.Error("Expected JSON error body")
				}
			}
		})
	}
}

func TestSessionAuth_StoreError(t *testing.T) {
	handler := SessionAuth(fakeResolver{err: errors.New("boom")}, quietLogger())(http.HandlerFunc(echoUserID))

	req := httptest.NewRequest("GET", "/meals", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "any"})
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestUserID_Missing(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Error("expected no user id in empty context")
	}
	if id, ok := UserID(context.WithValue(context.Background(), userIDKey, "u")); !ok || id != "u" {
		t.Errorf("UserID() = %q, %v", id, ok)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	handler := chimiddleware.RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	})))

	req := httptest.NewRequest("POST", "/meals", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var rec struct {
		Msg       string `json:"msg"`
		Method    string `json:"method"`
		Path      string `json:"path"`
		Status    int    `json:"status"`
		Bytes     int    `json:"bytes"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to unmarshal log output: %v", err)
	}

	if rec.Msg != "request" || rec.Method != "POST" || rec.Path != "/meals" {
		t.Errorf("unexpected log record: %+v", rec)
	}
	if rec.Status != http.StatusCreated || rec.Bytes != 5 {
		t.Errorf("expected status 201 and 5 bytes, got %d and %d", rec.Status, rec.Bytes)
	}
	if rec.RequestID == "" {
		t.Error("expected request id in log record")
	}
}
