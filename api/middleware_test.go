package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/i18n"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGuards(t *testing.T) {
	content := &stubContent{}
	engagement := &stubEngagement{}
	srv := newTestServer(t, Dependencies{Content: content, Engagement: engagement}, nil)
	projectPath := "/project/" + uuid.NewString() + "/like"

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"anonymous like", http.MethodPost, projectPath, "", http.StatusUnauthorized},
		{"garbage token is anonymous", http.MethodPost, projectPath, "not-a-jwt", http.StatusUnauthorized},
		{"user like", http.MethodPost, projectPath, srv.tokenFor(t, regularUser), http.StatusOK},
		{"anonymous admin", http.MethodGet, "/admin/projects", "", http.StatusUnauthorized},
		{"user admin", http.MethodGet, "/admin/projects", srv.tokenFor(t, regularUser), http.StatusForbidden},
		{"admin admin", http.MethodGet, "/admin/projects", srv.tokenFor(t, adminUser), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			srv.handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestResolveActor_SessionCookie(t *testing.T) {
	engagement := &stubEngagement{}
	srv := newTestServer(t, Dependencies{Engagement: engagement}, nil)

	req := httptest.NewRequest(http.MethodPost, "/project/"+uuid.NewString()+"/like", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: srv.tokenFor(t, regularUser)})
	req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: "pt"})
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if engagement.likedBy.UserID != regularUser.ID {
		t.Errorf("actor = %v, want %v", engagement.likedBy.UserID, regularUser.ID)
	}
	if engagement.likedBy.Locale != i18n.Portuguese {
		t.Errorf("locale = %q, want pt", engagement.likedBy.Locale)
	}
}

func TestResolveActor_DeletedUserIsAnonymous(t *testing.T) {
	srv := newTestServer(t, Dependencies{Engagement: &stubEngagement{}}, nil)
	ghost := *regularUser
	ghost.ID = uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/project/"+uuid.NewString()+"/like", nil)
	req.Header.Set("Authorization", "Bearer "+srv.tokenFor(t, &ghost))
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, Dependencies{}, map[string]string{"ACCEPTED_ORIGINS": "https://portfolio.test"})

	t.Run("disallowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		req.Header.Set("Origin", "https://evil.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", rec.Code)
		}
		if body := decodeError(t, rec); body.Error != "request blocked by CORS policy" {
			t.Errorf("error = %q", body.Error)
		}
	})

	t.Run("allowed preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/login", nil)
		req.Header.Set("Origin", "https://portfolio.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		srv.handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portfolio.test" {
			t.Errorf("Access-Control-Allow-Origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Access-Control-Allow-Credentials = %q", got)
		}
	})
}

func TestLimitBody(t *testing.T) {
	srv := newTestServer(t, Dependencies{Identity: &stubIdentity{}}, map[string]string{"MAX_UPLOAD_MB": "1"})

	body := strings.NewReader(`{"email":"` + strings.Repeat("a", 2<<20) + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestLogInternalServerErrors_RecoversPanic(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got, want := rec.Body.String(), `{"error":"Internal Server Error","status":"error"}`; got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestRequestID(t *testing.T) {
	srv := newTestServer(t, Dependencies{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}

	rec = httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if _, err := uuid.Parse(rec.Header().Get("X-Request-ID")); err != nil {
		t.Errorf("generated request ID is not a UUID: %v", err)
	}
}
