package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salongate/pkg/client"
	"salongate/pkg/lifecycle"
	"salongate/pkg/logger"
	"salongate/pkg/model"
	"salongate/pkg/session"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func profileBackend(t *testing.T, user model.User) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/profile" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid token"}`))
			return
		}
		json.NewEncoder(w).Encode(user)
	}))
}

func TestAuthenticate_ResolvesSessionFromToken(t *testing.T) {
	backend := profileBackend(t, model.User{ID: 9, Name: "Sam", Email: "sam@example.com", Role: "staff"})
	defer backend.Close()

	users := client.NewUserClient(client.NewHttpClient(backend.URL, time.Second))

	var got session.Session
	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = session.FromContext(r.Context())
	})

	req := httptest.NewRequest("GET", "/api/v1/appointments/staff/my", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	Authenticate(users, testLogger())(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if !found {
		t.Fatal("no session in handler context")
	}
	if got.Role != lifecycle.RoleStaff || got.UserID != 9 || got.Token != "good-token" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	backend := profileBackend(t, model.User{ID: 9, Role: "staff"})
	defer backend.Close()

	users := client.NewUserClient(client.NewHttpClient(backend.URL, time.Second))
	handler := Authenticate(users, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran despite rejected auth")
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc123", http.StatusUnauthorized},
		{"empty token", "Bearer   ", http.StatusUnauthorized},
		{"token rejected upstream", "Bearer stale-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/appointments/my", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthenticate_UnknownRoleForbidden(t *testing.T) {
	backend := profileBackend(t, model.User{ID: 9, Role: "superuser"})
	defer backend.Close()

	users := client.NewUserClient(client.NewHttpClient(backend.URL, time.Second))
	handler := Authenticate(users, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran with unrecognized role")
	}))

	req := httptest.NewRequest("GET", "/api/v1/appointments/my", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}
